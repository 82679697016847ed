package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/renderer"
	"github.com/google/subcommands"
)

// debtAddCmd registers a tracked debt.
type debtAddCmd struct {
	title     string
	total     float64
	remaining float64
	currency  string
	direction string
	category  string
}

func (*debtAddCmd) Name() string     { return "debt" }
func (*debtAddCmd) Synopsis() string { return "register a debt" }
func (*debtAddCmd) Usage() string {
	return `ascent debt -title <title> -total <value> [-remaining <value>] [-they-owe]

  Register a debt with its remaining balance. The remaining amount may not
  exceed the total.
`
}

func (c *debtAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Debt title.")
	f.Float64Var(&c.total, "total", 0, "Original debt amount.")
	f.Float64Var(&c.remaining, "remaining", -1, "Remaining amount. Defaults to the total.")
	f.StringVar(&c.currency, "c", ascent.DefaultCurrency, "Currency code.")
	f.StringVar(&c.direction, "direction", string(ascent.IOwe), "Who owes whom (i_owe, they_owe).")
	f.StringVar(&c.category, "category", "", "Category name.")
}

func (c *debtAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fin, err := DecodeFinances()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	remaining := c.remaining
	if remaining < 0 {
		remaining = c.total
	}
	err = fin.AddDebt(ascent.Debt{
		Title:     c.title,
		Total:     ascent.M(c.total, c.currency),
		Remaining: ascent.M(remaining, c.currency),
		Direction: ascent.DebtDirection(c.direction),
		Category:  c.category,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := EncodeFinanceExtras(fin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Registered debt %q, remaining %s\n", c.title, ascent.M(remaining, c.currency))
	return subcommands.ExitSuccess
}

// subAddCmd registers a recurring subscription.
type subAddCmd struct {
	title    string
	amount   float64
	currency string
	period   string
	category string
}

func (*subAddCmd) Name() string     { return "sub" }
func (*subAddCmd) Synopsis() string { return "register a subscription" }
func (*subAddCmd) Usage() string {
	return `ascent sub -title <title> -amount <value> [-period <monthly|yearly>]

  Register a recurring charge. Yearly subscriptions count into the monthly
  burn at one twelfth.
`
}

func (c *subAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Subscription title.")
	f.Float64Var(&c.amount, "amount", 0, "Amount per period.")
	f.StringVar(&c.currency, "c", ascent.DefaultCurrency, "Currency code.")
	f.StringVar(&c.period, "period", string(ascent.Monthly), "Billing period (monthly, yearly).")
	f.StringVar(&c.category, "category", "", "Category name.")
}

func (c *subAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fin, err := DecodeFinances()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err = fin.AddSubscription(ascent.Subscription{
		Title:    c.title,
		Amount:   ascent.M(c.amount, c.currency),
		Period:   ascent.SubPeriod(c.period),
		Category: c.category,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := EncodeFinanceExtras(fin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Registered subscription %q\n", c.title)
	return subcommands.ExitSuccess
}

// reviewCmd renders the financial review.
type reviewCmd struct {
	days int
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review the financial position" }
func (*reviewCmd) Usage() string {
	return `ascent review [-days <n>]

  Show the snapshot, monthly burn, spending by category, debts,
  subscriptions and the trailing balance series.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Length of the balance history.")
}

func (c *reviewCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profile := profileStore().Load()
	fin, err := DecodeFinances()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.FinanceMarkdown(profile, fin, c.days))
	return subcommands.ExitSuccess
}
