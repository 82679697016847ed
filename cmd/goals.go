package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent/renderer"
	"github.com/google/subcommands"
)

// goalsCmd lists goals, or shows one in detail.
type goalsCmd struct {
	goalID string
}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "list yearly goals" }
func (*goalsCmd) Usage() string {
	return `ascent goals [-g <goal-id>]

  List all yearly goals, or show one goal in full with its sub-goals,
  projects and minimum step.
`
}

func (c *goalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.goalID, "g", "", "Goal id to show in detail.")
}

func (c *goalsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.goalID == "" {
		printMarkdown(renderer.GoalsMarkdown(ledger))
		return subcommands.ExitSuccess
	}
	g := ledger.Get(c.goalID)
	if g == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown goal %q\n", c.goalID)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.GoalMarkdown(g))
	return subcommands.ExitSuccess
}
