package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// resetCmd wipes the stored state.
type resetCmd struct {
	all bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "reset the profile to defaults" }
func (*resetCmd) Usage() string {
	return `ascent reset [-all]

  Reset the profile to its defaults. With -all, also delete the goals,
  ledger, finance and arena files. Irreversible.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Also delete goals, ledger, finance and arena state.")
}

func (c *resetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := profileStore().Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Profile reset.")
	if !c.all {
		return subcommands.ExitSuccess
	}
	for _, name := range []string{"goals.jsonl", "transactions.jsonl", "finance.json", "arena.json"} {
		if err := os.Remove(statePath(name)); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", name, err)
			return subcommands.ExitFailure
		}
	}
	fmt.Println("All state files removed.")
	return subcommands.ExitSuccess
}
