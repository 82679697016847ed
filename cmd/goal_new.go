package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/date"
	"github.com/google/subcommands"
)

// goalNewCmd runs the guided goal creation flow: the draft is validated and
// decomposed by the advisory service before it is committed to the ledger.
type goalNewCmd struct {
	title    string
	category string
	metric   string
	target   float64
	intent   string
	minStep  string
	start    string
	end      string
	private  bool
}

func (*goalNewCmd) Name() string     { return "new" }
func (*goalNewCmd) Synopsis() string { return "create a yearly goal through the guided wizard" }
func (*goalNewCmd) Usage() string {
	return `ascent new -title <title> -metric <metric> -target <value> [options]

  Create a yearly goal. The draft is validated by the advisory service and
  decomposed into sub-goals and projects; when the service is unreachable a
  fixed single-step plan is used so the flow always completes.

Usage Examples:
$ ascent new -title "Пробежать 1000 км" -metric "км" -target 1000 -category sport -minstep "Выйти на пробежку"
`
}

func (c *goalNewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Goal title.")
	f.StringVar(&c.category, "category", "other", "Category (finance, sport, growth, work, other).")
	f.StringVar(&c.metric, "metric", "", "Unit of progress, e.g. км or руб.")
	f.Float64Var(&c.target, "target", 0, "Target value in the goal's metric.")
	f.StringVar(&c.intent, "intent", "", "Why this goal matters.")
	f.StringVar(&c.minStep, "minstep", "", "Title of the daily minimum step.")
	f.StringVar(&c.start, "start", "", "Start date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.end, "end", "", "End date (YYYY-MM-DD). Defaults to Dec 31 of the start year.")
	f.BoolVar(&c.private, "private", false, "Hide this goal from shared views.")
}

func (c *goalNewCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	draft := ascent.Draft{
		Title:    c.title,
		Category: ascent.ParseCategory(c.category),
		Intent:   c.intent,
		Metric:   c.metric,
		Target:   c.target,
		Private:  c.private,
		MinStep:  c.minStep,
	}
	var err error
	if c.start != "" {
		if draft.Start, err = date.Parse(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.end != "" {
		if draft.End, err = date.Parse(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	wizard := ascent.NewWizard(newAdvisor(ctx), ledger)

	verdict, _ := wizard.ValidateDraft(ctx, fmt.Sprintf("%g", draft.Target), draft.Title, draft.Metric)
	fmt.Println(verdict.Feedback)
	if !verdict.IsValid {
		fmt.Fprintln(os.Stderr, "The draft needs rework before it can be committed.")
		return subcommands.ExitUsageError
	}

	plan, _ := wizard.Decompose(ctx, draft.Title, draft.Metric, draft.Target, draft.Category)
	g, err := wizard.Commit(draft, plan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := EncodeGoals(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created goal %s with %d sub-goals and %d projects\n", g.ID, len(g.SubGoals), len(g.Projects))
	for _, habit := range plan.SuggestedHabits {
		fmt.Printf("  habit: %s\n", habit)
	}
	return subcommands.ExitSuccess
}
