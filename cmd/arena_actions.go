package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent"
	"github.com/google/subcommands"
)

// withGame loads the game, applies fn and persists on success.
func withGame(fn func(g *ascent.GameState) error) subcommands.ExitStatus {
	g, err := DecodeGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := fn(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// rollCmd spends one move and rolls the dice.
type rollCmd struct{}

func (*rollCmd) Name() string     { return "roll" }
func (*rollCmd) Synopsis() string { return "spend a move and roll the dice" }
func (*rollCmd) Usage() string {
	return `ascent roll

  Roll the dice in the arena. Each roll costs one move; moves are earned by
  completing minimum steps on goals.
`
}
func (*rollCmd) SetFlags(_ *flag.FlagSet) {}

// encodeGame is a seam so tests can fail the game save.
var encodeGame = EncodeGame

func (c *rollCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := profileStore()
	profile := store.Load()

	g, err := DecodeGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := g.RollDice(profile)
	if errors.Is(err, ascent.ErrNoMoves) {
		fmt.Fprintln(os.Stderr, "Error: no moves left, complete a minimum step first ('ascent step')")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// The game state is persisted first: a failed save must not cost the
	// profile its move.
	if err := encodeGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Save(profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if res.Rolled == 0 {
		fmt.Println(res.Note)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Rolled %d, moved to %s", res.Rolled, res.Cell.Name)
	if res.CrossedStart {
		fmt.Printf(", crossed start (+%d)", ascent.StartBonus)
	}
	if res.Note != "" {
		fmt.Printf(": %s", res.Note)
	}
	fmt.Println()
	return subcommands.ExitSuccess
}

// buyCmd buys an unowned asset cell.
type buyCmd struct {
	cell int
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an asset cell" }
func (*buyCmd) Usage() string {
	return `ascent buy -cell <id>

  Buy an unowned asset. The purchase tax is charged on top of the cost.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.cell, "cell", -1, "Board cell id of the asset.")
}

func (c *buyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withGame(func(g *ascent.GameState) error {
		if err := g.BuyAsset(c.cell); err != nil {
			return err
		}
		p := g.ActivePlayer()
		fmt.Printf("Bought %s, cash %s\n", g.Board[c.cell].Name, p.Cash)
		return nil
	})
}

// stockCmd buys or sells shares of an asset cell.
type stockCmd struct {
	cell   int
	shares int
	sell   bool
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "trade shares of an asset" }
func (*stockCmd) Usage() string {
	return `ascent stock -cell <id> -shares <n> [-sell]

  Buy or sell shares of an asset cell at the live district price. Sale
  proceeds are taxed.
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.cell, "cell", -1, "Board cell id of the asset.")
	f.IntVar(&c.shares, "shares", 1, "Number of shares.")
	f.BoolVar(&c.sell, "sell", false, "Sell instead of buy.")
}

func (c *stockCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withGame(func(g *ascent.GameState) error {
		var err error
		if c.sell {
			err = g.SellStock(c.cell, c.shares)
		} else {
			err = g.BuyStock(c.cell, c.shares)
		}
		if err != nil {
			return err
		}
		p := g.ActivePlayer()
		fmt.Printf("Portfolio: %d shares of %s, cash %s\n", p.Portfolio[c.cell], g.Board[c.cell].Name, p.Cash)
		return nil
	})
}

// depositCmd places a bank deposit.
type depositCmd struct {
	cell   int
	amount float64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "place a bank deposit" }
func (*depositCmd) Usage() string {
	return `ascent deposit -cell <id> -amount <value>

  Place a deposit on a bank cell. Interest is credited immediately.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.cell, "cell", -1, "Board cell id of the bank.")
	f.Float64Var(&c.amount, "amount", 0, "Amount to deposit.")
}

func (c *depositCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withGame(func(g *ascent.GameState) error {
		p := g.ActivePlayer()
		amount := ascent.M(c.amount, p.Cash.Currency())
		if err := g.MakeDeposit(c.cell, amount); err != nil {
			return err
		}
		fmt.Printf("Deposited %s, cash %s\n", amount, p.Cash)
		return nil
	})
}

// upgradeCmd upgrades an owned asset.
type upgradeCmd struct {
	cell int
}

func (*upgradeCmd) Name() string     { return "upgrade" }
func (*upgradeCmd) Synopsis() string { return "upgrade an owned asset" }
func (*upgradeCmd) Usage() string {
	return `ascent upgrade -cell <id>

  Upgrade an asset you own for half its base cost.
`
}

func (c *upgradeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.cell, "cell", -1, "Board cell id of the asset.")
}

func (c *upgradeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withGame(func(g *ascent.GameState) error {
		if err := g.UpgradeAsset(c.cell); err != nil {
			return err
		}
		p := g.ActivePlayer()
		fmt.Printf("Upgraded %s to level %d, cash %s\n", g.Board[c.cell].Name, p.AssetLevels[c.cell], p.Cash)
		return nil
	})
}
