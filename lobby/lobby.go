// Package lobby stores multiplayer lobby rosters in a key-value backend
// with a time-limited lease. A lobby is a named session; its roster is the
// list of players last written, with a one-hour expiry. Joins are
// read-modify-write so concurrent players cannot silently drop each other.
package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is the lobby lease: a roster untouched for an hour expires.
const DefaultTTL = time.Hour

// Player is one roster entry.
type Player struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cash        float64 `json:"cash"`
	Position    int     `json:"position"`
	OwnedAssets int     `json:"ownedAssetsCount"`
}

// Roster is the authoritative player list of one lobby.
type Roster struct {
	Players []Player `json:"players"`
}

// Store persists rosters in a KV backend.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore creates a roster store with the default one-hour lease.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, ttl: DefaultTTL}
}

func key(lobbyID string) string { return "lobby:" + lobbyID }

// Get returns the lobby's roster; an absent or expired lobby is an empty
// roster, never an error.
func (s *Store) Get(ctx context.Context, lobbyID string) (Roster, error) {
	data, err := s.kv.Get(ctx, key(lobbyID))
	if errors.Is(err, ErrNotFound) {
		return Roster{Players: []Player{}}, nil
	}
	if err != nil {
		return Roster{}, fmt.Errorf("lobby %q: %w", lobbyID, err)
	}
	return decodeRoster(lobbyID, data)
}

// Join upserts the player into the lobby's roster by id and refreshes the
// lease, returning the full updated roster. Joining twice with the same id
// keeps exactly one entry carrying the most recent values.
func (s *Store) Join(ctx context.Context, lobbyID string, p Player) (Roster, error) {
	if p.ID == "" {
		return Roster{}, errors.New("player id is required")
	}
	var updated Roster
	err := s.kv.Update(ctx, key(lobbyID), s.ttl, func(old []byte) ([]byte, error) {
		roster := Roster{Players: []Player{}}
		if old != nil {
			var err error
			roster, err = decodeRoster(lobbyID, old)
			if err != nil {
				// A corrupt roster is replaced rather than wedging the lobby.
				roster = Roster{Players: []Player{}}
			}
		}
		replaced := false
		for i := range roster.Players {
			if roster.Players[i].ID == p.ID {
				roster.Players[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			roster.Players = append(roster.Players, p)
		}
		updated = roster
		return json.Marshal(roster)
	})
	if err != nil {
		return Roster{}, fmt.Errorf("join lobby %q: %w", lobbyID, err)
	}
	return updated, nil
}

func decodeRoster(lobbyID string, data []byte) (Roster, error) {
	var roster Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		return Roster{}, fmt.Errorf("lobby %q: malformed roster: %w", lobbyID, err)
	}
	if roster.Players == nil {
		roster.Players = []Player{}
	}
	return roster, nil
}
