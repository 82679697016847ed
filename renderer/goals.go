package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/ascent"
	md "github.com/nao1215/markdown"
)

// GoalsMarkdown lists every goal with its displayed completion.
func GoalsMarkdown(ledger *ascent.GoalLedger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Yearly Goals")
	goals := ledger.Goals()
	if len(goals) == 0 {
		doc.PlainText("No goals yet. Start the wizard with `goal new`.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Goal", "Category", "Phase", "Done", "Status"},
	}
	for _, g := range goals {
		table.Rows = append(table.Rows, []string{
			g.Title,
			string(g.Category),
			string(g.Phase),
			fmt.Sprintf("%d%%", g.CompletionPercent()),
			string(g.Status),
		})
	}
	doc.Table(table)
	return doc.String()
}

// GoalMarkdown renders one goal in full: metric progress, sub-goals,
// projects and the minimum step.
func GoalMarkdown(g *ascent.YearGoal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(g.Title)
	doc.PlainText(fmt.Sprintf("%s %g / %g %s (%d%%)",
		Bar(ascent.Percent(g.CompletionPercent())),
		g.CurrentValue, g.TargetValue, g.Metric, g.CompletionPercent()))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{md.Bold("Category"), string(g.Category)},
		Rows: [][]string{
			{"Phase", string(g.Phase)},
			{"Period", fmt.Sprintf("%s to %s", g.Start, g.End)},
			{"Status", string(g.Status)},
		},
	})
	if g.Intent != "" {
		doc.PlainText(g.Intent)
	}

	if g.MinStep != nil {
		doc.H2("Minimum Step")
		mark := " "
		if g.MinStep.Done {
			mark = "x"
		}
		doc.PlainText(fmt.Sprintf("- [%s] %s", mark, g.MinStep.Title))
	}

	if len(g.SubGoals) > 0 {
		doc.H2("Sub-goals")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Sub-goal", "Effort", "Weight", "Deadline"},
		}
		for _, sg := range g.SubGoals {
			table.Rows = append(table.Rows, []string{
				sg.Title,
				string(sg.Effort),
				fmt.Sprintf("%d", sg.Weight),
				sg.Deadline.String(),
			})
		}
		doc.Table(table)
	}

	if len(g.Projects) > 0 {
		doc.H2("Projects")
		var items []string
		for _, pr := range g.Projects {
			items = append(items, fmt.Sprintf("%s (%gh, %s)", pr.Title, pr.EstimatedHours, pr.Complexity))
		}
		doc.BulletList(items...)
	}

	return doc.String()
}
