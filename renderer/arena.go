package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/ascent"
	md "github.com/nao1215/markdown"
)

// ArenaMarkdown renders the game table: players, their holdings and the
// last moves of the narrative history.
func ArenaMarkdown(g *ascent.GameState) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Arena, turn %d", g.Turn))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignRight},
		Header:    []string{"Player", "Cash", "Position", "Assets"},
	}
	for i, p := range g.Players {
		name := p.Name
		if i == g.Active {
			name = md.Bold(name)
		}
		table.Rows = append(table.Rows, []string{
			name,
			p.Cash.String(),
			g.Board[p.Position].Name,
			fmt.Sprintf("%d", p.OwnedAssetCount()),
		})
	}
	doc.Table(table)

	if len(g.OwnedAssets) > 0 {
		doc.H2("Owned Assets")
		owners := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Asset", "Owner", "Share Price"},
		}
		byID := make(map[string]string, len(g.Players))
		for _, p := range g.Players {
			byID[p.ID] = p.Name
		}
		for _, cell := range g.Board {
			ownerID, taken := g.OwnedAssets[cell.ID]
			if !taken {
				continue
			}
			price, err := g.SharePrice(cell.ID)
			if err != nil {
				continue
			}
			owners.Rows = append(owners.Rows, []string{cell.Name, byID[ownerID], price.String()})
		}
		doc.Table(owners)
	}

	if n := len(g.History); n > 0 {
		doc.H2("Recent Moves")
		start := n - 5
		if start < 0 {
			start = 0
		}
		doc.BulletList(g.History[start:]...)
	}

	return doc.String()
}
