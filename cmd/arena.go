package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"net/http"
	"os"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/lobby"
	"github.com/etnz/ascent/renderer"
	"github.com/google/subcommands"
)

// ErrNoGame is returned when no arena game has been started yet.
var ErrNoGame = errors.New("no game in progress, start one with 'arena -new'")

// DecodeGame loads the persisted game state.
func DecodeGame() (*ascent.GameState, error) {
	data, err := os.ReadFile(statePath("arena.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoGame
	}
	if err != nil {
		return nil, err
	}
	var g ascent.GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("arena state is malformed: %w", err)
	}
	g.SetDice(func() int { return 1 + rand.Intn(6) })
	return &g, nil
}

// EncodeGame persists the game state wholesale.
func EncodeGame(g *ascent.GameState) error {
	if err := os.MkdirAll(*homeDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statePath("arena.json"), data, 0o644)
}

// arenaCmd shows the game table, starts a new game, or syncs with a lobby.
type arenaCmd struct {
	start  bool
	cash   float64
	server string
	id     string
}

func (*arenaCmd) Name() string     { return "arena" }
func (*arenaCmd) Synopsis() string { return "show the arena, start a game or sync a lobby" }
func (*arenaCmd) Usage() string {
	return `ascent arena [-new [-cash <amount>]] [-server <url> -lobby <id>]

  Without flags, show the current game table. With -new, start a fresh game
  with the profile as the only player. With -server and -lobby, publish the
  local player to the lobby and reconcile the roster into the game: remote
  players follow the server, the local player stays optimistic.
`
}

func (c *arenaCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.start, "new", false, "Start a fresh game.")
	f.Float64Var(&c.cash, "cash", 15000, "Starting cash for a new game.")
	f.StringVar(&c.server, "server", "", "Lobby server base URL.")
	f.StringVar(&c.id, "lobby", "", "Lobby id to sync with.")
}

func (c *arenaCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profile := profileStore().Load()

	if c.start {
		player := ascent.NewGamePlayer(profile.ID, profile.Name, ascent.M(c.cash, ascent.DefaultCurrency))
		g := ascent.NewGame(ascent.NewBoard(ascent.DefaultCurrency), player)
		if err := EncodeGame(g); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("New game started with %s at %s\n", player.Name, player.Cash)
		return subcommands.ExitSuccess
	}

	g, err := DecodeGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.server != "" && c.id != "" {
		if err := c.sync(ctx, g, profile.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: syncing lobby: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := EncodeGame(g); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.ArenaMarkdown(g))
	return subcommands.ExitSuccess
}

// sync publishes the local player and adopts the lobby roster.
func (c *arenaCmd) sync(ctx context.Context, g *ascent.GameState, localID string) error {
	var local *ascent.GamePlayer
	for _, p := range g.Players {
		if p.ID == localID {
			local = p
			break
		}
	}
	if local == nil {
		return fmt.Errorf("the profile is not part of this game")
	}

	join := struct {
		LobbyID string       `json:"lobbyId"`
		Player  lobby.Player `json:"player"`
	}{
		LobbyID: c.id,
		Player: lobby.Player{
			ID:          local.ID,
			Name:        local.Name,
			Cash:        local.Cash.AsFloat(),
			Position:    local.Position,
			OwnedAssets: local.OwnedAssetCount(),
		},
	}
	body, err := json.Marshal(join)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/join", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("join answered %s", resp.Status)
	}
	var roster lobby.Roster
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return err
	}

	peers := make([]ascent.ArenaPeer, 0, len(roster.Players))
	for _, p := range roster.Players {
		peers = append(peers, ascent.ArenaPeer{
			ID:          p.ID,
			Name:        p.Name,
			Cash:        p.Cash,
			Position:    p.Position,
			OwnedAssets: p.OwnedAssets,
		})
	}
	g.Reconcile(peers, localID)
	fmt.Printf("Synced lobby %s, %d players\n", c.id, len(g.Players))
	return nil
}
