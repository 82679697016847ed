package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/quote"
	"github.com/google/subcommands"
)

// quoteCmd fetches a market quote, optionally feeding a district multiplier.
type quoteCmd struct {
	symbol   string
	district string
	base     float64
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch a market quote" }
func (*quoteCmd) Usage() string {
	return `ascent quote -s <symbol> [-district <name> -base <price>]

  Fetch the latest price for a symbol through the caching Alpha Vantage
  proxy. With -district and -base, the price relative to the base becomes
  the district's live market multiplier in the arena.

  Requires ALPHAVANTAGE_API_KEY in the environment or a .env file.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol, e.g. IBM.")
	f.StringVar(&c.district, "district", "", "Arena district to scale by this quote.")
	f.Float64Var(&c.base, "base", 0, "Baseline price for the multiplier.")
}

func (c *quoteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	loadEnv()
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	client := quote.NewClient(os.Getenv("ALPHAVANTAGE_API_KEY"))
	price, err := client.GlobalQuote(ctx, c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %.4f\n", c.symbol, price)

	if c.district == "" {
		return subcommands.ExitSuccess
	}
	if c.base <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -base must be positive to derive a multiplier")
		return subcommands.ExitUsageError
	}
	return withGame(func(g *ascent.GameState) error {
		mult := price / c.base
		g.Multipliers[c.district] = mult
		fmt.Printf("District %s multiplier set to %.2f\n", c.district, mult)
		return nil
	})
}
