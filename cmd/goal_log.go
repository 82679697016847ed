package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// logCmd records measured progress on a goal.
type logCmd struct {
	goalID string
	delta  float64
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "log progress on a goal" }
func (*logCmd) Usage() string {
	return `ascent log -g <goal-id> -delta <value>

  Record progress in the goal's metric. Progress only ever accumulates; the
  goal completes when the target is reached.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.goalID, "g", "", "Goal id.")
	f.Float64Var(&c.delta, "delta", 0, "Progress to add, in the goal's metric.")
}

func (c *logCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	profile := profileStore().Load()

	entry, err := ledger.LogProgress(c.goalID, c.delta, profile.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := EncodeGoals(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	g := ledger.Get(c.goalID)
	fmt.Printf("Logged +%g %s, now at %d%%\n", entry.Delta, g.Metric, g.CompletionPercent())
	return subcommands.ExitSuccess
}
