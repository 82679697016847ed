package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/renderer"
	"github.com/google/subcommands"
)

// txCmd lists ledger transactions.
type txCmd struct {
	limit int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list ledger transactions" }
func (*txCmd) Usage() string {
	return `ascent tx [-n <count>]

  List transactions, newest first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of transactions to show. 0 shows all.")
}

func (c *txCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fin, err := DecodeFinances()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(fin, c.limit))
	return subcommands.ExitSuccess
}

// txAddCmd appends one transaction to the ledger file.
type txAddCmd struct {
	amount   float64
	currency string
	kind     string
	category string
	note     string
	date     string
}

func (*txAddCmd) Name() string     { return "add" }
func (*txAddCmd) Synopsis() string { return "record an income or expense" }
func (*txAddCmd) Usage() string {
	return `ascent add -amount <value> -kind <income|expense> -category <name> [-note <text>] [-d <date>]

  Append a transaction to the ledger. The amount must be positive; the sign
  is implied by the kind.

Usage Examples:
$ ascent add -amount 8000 -kind expense -category "Жилье" -note "аренда"
`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount, strictly positive.")
	f.StringVar(&c.currency, "c", ascent.DefaultCurrency, "Currency code.")
	f.StringVar(&c.kind, "kind", "expense", "Transaction kind (income, expense).")
	f.StringVar(&c.category, "category", "", "Category name.")
	f.StringVar(&c.note, "note", "", "Free-form note.")
	f.StringVar(&c.date, "d", "", "Timestamp (YYYY-MM-DD). Defaults to now.")
}

func (c *txAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := ascent.ParseTxKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var at time.Time
	if c.date != "" {
		at, err = time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	tx, err := ascent.NewTransaction(ascent.M(c.amount, c.currency), kind, c.category, c.note, at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return AppendTransaction(tx)
}
