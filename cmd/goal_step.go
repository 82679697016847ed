package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/date"
	"github.com/google/subcommands"
)

// stepCmd completes today's minimum step on a goal.
type stepCmd struct {
	goalID string
}

func (*stepCmd) Name() string     { return "step" }
func (*stepCmd) Synopsis() string { return "complete the goal's daily minimum step" }
func (*stepCmd) Usage() string {
	return `ascent step -g <goal-id>

  Complete the minimum operational step of a goal for today. Advances the
  goal by 1% of its target, grants XP and a move, and maintains the streak.
  Completing the same step twice on one day is rejected.
`
}

func (c *stepCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.goalID, "g", "", "Goal id.")
}

func (c *stepCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store := profileStore()
	profile := store.Load()

	err = ledger.CompleteMinStep(c.goalID, date.Today(), profile)
	switch {
	case errors.Is(err, ascent.ErrMinStepDone):
		fmt.Println("Already done today. Come back tomorrow.")
		return subcommands.ExitSuccess
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeGoals(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Save(profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Step done. +%d XP, +%d move, streak %d days\n",
		ascent.MinStepXP, ascent.MinStepMoves, profile.Streak)
	return subcommands.ExitSuccess
}
