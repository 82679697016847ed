package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the main dashboard" }
func (*dashboardCmd) Usage() string {
	return `ascent dashboard

  Show level, streak, moves, the freedom gauge and active goals.
`
}
func (*dashboardCmd) SetFlags(_ *flag.FlagSet) {}

func (c *dashboardCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profile := profileStore().Load()
	goals, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fin, err := DecodeFinances()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.DashboardMarkdown(profile, fin, goals))
	return subcommands.ExitSuccess
}
