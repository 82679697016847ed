package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/ascent"
	"github.com/google/subcommands"
)

// testHome points the state files at a throwaway directory.
func testHome(t *testing.T) {
	t.Helper()
	old := *homeDir
	*homeDir = t.TempDir()
	t.Cleanup(func() { *homeDir = old })
}

// seedGame persists a profile and a fresh one-player game.
func seedGame(t *testing.T, cash float64) *ascent.Profile {
	t.Helper()
	profile := ascent.DefaultProfile()
	if err := profileStore().Save(profile); err != nil {
		t.Fatal(err)
	}
	player := ascent.NewGamePlayer(profile.ID, profile.Name, ascent.M(cash, ascent.DefaultCurrency))
	if err := EncodeGame(ascent.NewGame(ascent.NewBoard(ascent.DefaultCurrency), player)); err != nil {
		t.Fatal(err)
	}
	return profile
}

func TestBuyAfterPersistedGame(t *testing.T) {
	testHome(t)
	seedGame(t, 20000)

	// A freshly persisted game must come back ready for the reducers.
	buy := &buyCmd{cell: 14}
	if status := buy.Execute(context.Background(), nil); status != subcommands.ExitSuccess {
		t.Fatalf("buy exited %v", status)
	}
	upgrade := &upgradeCmd{cell: 14}
	if status := upgrade.Execute(context.Background(), nil); status != subcommands.ExitSuccess {
		t.Fatalf("upgrade exited %v", status)
	}

	g, err := DecodeGame()
	if err != nil {
		t.Fatal(err)
	}
	if g.Players[0].AssetLevels[14] != 2 {
		t.Errorf("asset level = %d, want 2", g.Players[0].AssetLevels[14])
	}
}

func TestRollPersistsGameAndProfileTogether(t *testing.T) {
	testHome(t)
	profile := seedGame(t, 5000)

	if status := (&rollCmd{}).Execute(context.Background(), nil); status != subcommands.ExitSuccess {
		t.Fatalf("roll exited %v", status)
	}

	saved := profileStore().Load()
	if saved.Moves != profile.Moves-1 {
		t.Errorf("moves = %d, want %d", saved.Moves, profile.Moves-1)
	}
	g, err := DecodeGame()
	if err != nil {
		t.Fatal(err)
	}
	if g.Turn != 1 {
		t.Errorf("turn = %d, want 1", g.Turn)
	}
}

func TestRollKeepsMoveWhenGameSaveFails(t *testing.T) {
	testHome(t)
	profile := seedGame(t, 5000)

	old := encodeGame
	encodeGame = func(*ascent.GameState) error { return errors.New("disk full") }
	t.Cleanup(func() { encodeGame = old })

	if status := (&rollCmd{}).Execute(context.Background(), nil); status != subcommands.ExitFailure {
		t.Fatalf("roll exited %v, want failure", status)
	}

	// The move must not be spent when the board could not advance.
	saved := profileStore().Load()
	if saved.Moves != profile.Moves {
		t.Errorf("moves = %d, want %d untouched", saved.Moves, profile.Moves)
	}
	g, err := DecodeGame()
	if err != nil {
		t.Fatal(err)
	}
	if g.Turn != 0 {
		t.Errorf("turn = %d, want 0 untouched", g.Turn)
	}
}
