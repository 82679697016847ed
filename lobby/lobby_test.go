package lobby

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AbsentLobbyIsEmptyRoster(t *testing.T) {
	s := NewStore(NewMemKV())
	roster, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, roster.Players)
	assert.Empty(t, roster.Players)
}

func TestJoin_UpsertsByID(t *testing.T) {
	s := NewStore(NewMemKV())
	ctx := context.Background()

	_, err := s.Join(ctx, "room1", Player{ID: "p1", Name: "Аня", Cash: 1000})
	require.NoError(t, err)
	_, err = s.Join(ctx, "room1", Player{ID: "p2", Name: "Борис", Cash: 900})
	require.NoError(t, err)

	// Same id again with different cash: exactly one entry, latest value.
	roster, err := s.Join(ctx, "room1", Player{ID: "p1", Name: "Аня", Cash: 750})
	require.NoError(t, err)
	require.Len(t, roster.Players, 2)

	var p1 *Player
	for i := range roster.Players {
		if roster.Players[i].ID == "p1" {
			require.Nil(t, p1, "duplicate entry for p1")
			p1 = &roster.Players[i]
		}
	}
	require.NotNil(t, p1)
	assert.Equal(t, 750.0, p1.Cash)
}

func TestJoin_RequiresPlayerID(t *testing.T) {
	s := NewStore(NewMemKV())
	_, err := s.Join(context.Background(), "room1", Player{Name: "ghost"})
	require.Error(t, err)
}

func TestJoin_ConcurrentJoinsAllSurvive(t *testing.T) {
	// Blind last-PUT-wins would drop players here; the read-modify-write
	// contract must keep all of them.
	s := NewStore(NewMemKV())
	ctx := context.Background()

	var wg sync.WaitGroup
	players := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range players {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.Join(ctx, "busy", Player{ID: id, Name: id})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	roster, err := s.Get(ctx, "busy")
	require.NoError(t, err)
	assert.Len(t, roster.Players, len(players))
}

func TestLease_ExpiresAfterAnHour(t *testing.T) {
	kv := NewMemKV()
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	kv.Now = func() time.Time { return clock }
	s := NewStore(kv)
	ctx := context.Background()

	_, err := s.Join(ctx, "room1", Player{ID: "p1"})
	require.NoError(t, err)

	clock = clock.Add(59 * time.Minute)
	roster, err := s.Get(ctx, "room1")
	require.NoError(t, err)
	assert.Len(t, roster.Players, 1, "lease still valid")

	clock = clock.Add(2 * time.Minute)
	roster, err = s.Get(ctx, "room1")
	require.NoError(t, err)
	assert.Empty(t, roster.Players, "lease expired")
}

func TestJoin_RefreshesLease(t *testing.T) {
	kv := NewMemKV()
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	kv.Now = func() time.Time { return clock }
	s := NewStore(kv)
	ctx := context.Background()

	_, err := s.Join(ctx, "room1", Player{ID: "p1"})
	require.NoError(t, err)

	clock = clock.Add(45 * time.Minute)
	_, err = s.Join(ctx, "room1", Player{ID: "p2"})
	require.NoError(t, err)

	clock = clock.Add(45 * time.Minute) // 90m after first join, 45m after second
	roster, err := s.Get(ctx, "room1")
	require.NoError(t, err)
	assert.Len(t, roster.Players, 2, "second join must have refreshed the lease")
}

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	s := NewStore(NewMemKV())
	r := mux.NewRouter()
	Routes(r, s)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, s
}

func TestHTTP_GetLobby(t *testing.T) {
	srv, s := newTestServer(t)
	_, err := s.Join(context.Background(), "room1", Player{ID: "p1", Name: "Аня"})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/lobby?id=room1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var roster Roster
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&roster))
	require.Len(t, roster.Players, 1)
	assert.Equal(t, "Аня", roster.Players[0].Name)
}

func TestHTTP_GetAbsentLobby(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/lobby?id=ghost")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"players": []}`, readAll(t, resp))
}

func TestHTTP_Join(t *testing.T) {
	srv, _ := newTestServer(t)
	body, _ := json.Marshal(joinRequest{
		LobbyID: "room1",
		Player:  Player{ID: "p1", Name: "Аня", Cash: 1200, Position: 3, OwnedAssets: 1},
	})
	resp, err := http.Post(srv.URL+"/join", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var roster Roster
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&roster))
	require.Len(t, roster.Players, 1)
	assert.Equal(t, 1200.0, roster.Players[0].Cash)
}

func TestHTTP_JoinRejectsGarbage(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Post(srv.URL+"/join", "application/json", bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}
