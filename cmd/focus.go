package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent"
	"github.com/google/subcommands"
)

// focusCmd enters distraction-free focus mode on one task.
type focusCmd struct {
	task string
}

func (*focusCmd) Name() string     { return "focus" }
func (*focusCmd) Synopsis() string { return "enter focus mode on a task" }
func (*focusCmd) Usage() string {
	return `ascent focus -task <title>

  Enter focus mode: everything but the task disappears, and the advisory
  service offers a short mantra to start with.
`
}

func (c *focusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.task, "task", "", "Title of the task to focus on.")
}

func (c *focusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.task == "" {
		fmt.Fprintln(os.Stderr, "Error: -task is required")
		return subcommands.ExitUsageError
	}

	router := ascent.NewRouter()
	router.EnterFocus(c.task)
	if !router.Chrome() {
		// Focus hides everything but the task and the mantra.
		fmt.Print("\033[2J\033[H")
	}

	mantra := newAdvisor(ctx).FocusMantra(ctx, c.task)
	printMarkdown(fmt.Sprintf("# %s\n\n> %s\n", c.task, mantra))
	return subcommands.ExitSuccess
}
