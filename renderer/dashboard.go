package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/ascent"
	md "github.com/nao1215/markdown"
)

// Bar renders a ten-segment text gauge for a percentage. The value is
// clamped for display only.
func Bar(p ascent.Percent) string {
	filled := int(p.Clamp()) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func DashboardMarkdown(p *ascent.Profile, fin *ascent.FinLedger, goals *ascent.GoalLedger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dashboard: %s", p.Name))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Level"), md.Bold(fmt.Sprintf("%d", p.Level))},
		Rows: [][]string{
			{"XP", fmt.Sprintf("%d", p.XP)},
			{"Streak", fmt.Sprintf("%d days", p.Streak)},
			{"Moves", fmt.Sprintf("%d", p.Moves)},
		},
	})

	burn := fin.MonthlyBurn(p.Snapshot)
	target := ascent.FreedomTarget(burn)
	index := ascent.FreedomIndex(p.NetWorth(), target)

	doc.H2("Freedom")
	doc.PlainText(fmt.Sprintf("%s %d%% of %s", Bar(ascent.Percent(index)), index, target))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Net Worth"), md.Bold(p.NetWorth().String())},
		Rows: [][]string{
			{"Monthly Burn", burn.String()},
			{"Freedom Target", target.String()},
		},
	})

	if active := goals.Active(); len(active) > 0 {
		doc.H2("Active Goals")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Goal", "Progress", "Done"},
		}
		for _, g := range active {
			pct := g.CompletionPercent()
			table.Rows = append(table.Rows, []string{
				g.Title,
				Bar(ascent.Percent(pct)),
				fmt.Sprintf("%d%%", pct),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}
