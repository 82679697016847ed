package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/ascent"
	"github.com/etnz/ascent/advisor"
	"github.com/google/subcommands"
)

// assistCmd starts an interactive chat with the AI mentor. The arena
// situation, when a game is in progress, is part of every request.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with the AI mentor" }
func (*assistCmd) Usage() string {
	return `ascent assist [initial message]

  Start an interactive session with the mentor. It sees the current arena
  situation and answers in character. An empty line quits.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc := newAdvisor(ctx)
	game := c.gameContext()

	var history []string
	ask := func(message string) {
		reply := svc.Chat(ctx, message, history, game)
		printMarkdown(reply)
		history = append(history, "user: "+message, "mentor: "+reply)
	}

	if f.NArg() > 0 {
		ask(strings.Join(f.Args(), " "))
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}
		ask(message)
	}
	return subcommands.ExitSuccess
}

// gameContext snapshots the local player's arena situation, empty when no
// game is in progress.
func (*assistCmd) gameContext() advisor.GameContext {
	g, err := DecodeGame()
	if err != nil {
		return advisor.GameContext{}
	}
	p := g.ActivePlayer()
	indices := make(map[string]float64)
	for _, cell := range g.Board {
		if cell.Kind == ascent.CellAsset {
			indices[cell.District] = g.Multiplier(cell.District)
		}
	}
	return advisor.GameContext{
		Cash:             p.Cash.AsFloat(),
		Position:         p.Position,
		OwnedAssetsCount: p.OwnedAssetCount(),
		MarketIndices:    indices,
	}
}
