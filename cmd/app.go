// Package cmd implements the CLI application around the ascent state files.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ascent"
	"github.com/etnz/ascent/advisor"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&dashboardCmd{},
	&profileCmd{},
	&goalsCmd{},
	&goalNewCmd{},
	&stepCmd{},
	&logCmd{},
	&txCmd{},
	&txAddCmd{},
	&debtAddCmd{},
	&subAddCmd{},
	&reviewCmd{},
	&arenaCmd{},
	&rollCmd{},
	&buyCmd{},
	&stockCmd{},
	&depositCmd{},
	&upgradeCmd{},
	&quoteCmd{},
	&focusCmd{},
	&assistCmd{},
	&serveCmd{},
	&resetCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var homeDir = flag.String("home", defaultHome(), "Path to the folder holding the state files")

func defaultHome() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".ascent")
	}
	return ".ascent"
}

func statePath(name string) string { return filepath.Join(*homeDir, name) }

func profileStore() *ascent.ProfileStore {
	return ascent.NewProfileStore(&ascent.FileStore{Path: statePath("profile.json")})
}

// DecodeGoals loads the goal ledger from the goals file. A missing file is
// an empty ledger.
func DecodeGoals() (*ascent.GoalLedger, error) {
	ledger := ascent.NewGoalLedger()
	f, err := os.Open(statePath("goals.jsonl"))
	if errors.Is(err, fs.ErrNotExist) {
		return ledger, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := ascent.DecodeGoals(f, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// EncodeGoals rewrites the goals file wholesale.
func EncodeGoals(ledger *ascent.GoalLedger) error {
	if err := os.MkdirAll(*homeDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(statePath("goals.jsonl"))
	if err != nil {
		return err
	}
	defer f.Close()
	return ascent.EncodeGoals(f, ledger)
}

// DecodeFinances loads the financial ledger: transactions from the JSONL
// ledger file, debts and subscriptions from the finance document. Missing
// files are an empty ledger.
func DecodeFinances() (*ascent.FinLedger, error) {
	ledger := ascent.NewFinLedger()
	if f, err := os.Open(statePath("transactions.jsonl")); err == nil {
		defer f.Close()
		if err := ascent.DecodeTransactions(f, ledger); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if f, err := os.Open(statePath("finance.json")); err == nil {
		defer f.Close()
		if err := ascent.DecodeFinanceExtras(f, ledger); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return ledger, nil
}

// EncodeFinanceExtras rewrites the debts and subscriptions document.
func EncodeFinanceExtras(ledger *ascent.FinLedger) error {
	if err := os.MkdirAll(*homeDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(statePath("finance.json"))
	if err != nil {
		return err
	}
	defer f.Close()
	return ascent.EncodeFinanceExtras(f, ledger)
}

// AppendTransaction appends a single transaction to the ledger file.
func AppendTransaction(tx ascent.Transaction) subcommands.ExitStatus {
	if err := os.MkdirAll(*homeDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	filename := statePath("transactions.jsonl")
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := ascent.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s %s in %s\n", tx.Kind, tx.Amount, tx.Category)
	return subcommands.ExitSuccess
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// offlineAdvisor serves the fixed fallbacks when no AI backend is reachable.
type offlineAdvisor struct{}

func (offlineAdvisor) ValidateGoal(context.Context, string, string, string) advisor.Validation {
	return advisor.FallbackValidation()
}
func (offlineAdvisor) DecomposeGoal(_ context.Context, title, metric string, target float64, _ string) advisor.Decomposition {
	return advisor.FallbackDecomposition(title, metric, target)
}
func (offlineAdvisor) FocusMantra(context.Context, string) string { return advisor.FallbackMantra }
func (offlineAdvisor) Chat(context.Context, string, []string, advisor.GameContext) string {
	return advisor.FallbackReply
}

// newAdvisor builds the advisory service, degrading to the offline
// fallbacks when the Gemini client cannot start.
func newAdvisor(ctx context.Context) advisor.Service {
	loadEnv()
	svc, err := advisor.NewGemini(ctx)
	if err != nil {
		log.Printf("warning: advisory service unavailable, using offline answers: %v", err)
		return offlineAdvisor{}
	}
	return svc
}

var envLoaded bool

// loadEnv reads the optional .env file once. Real environment variables win.
func loadEnv() {
	if envLoaded {
		return
	}
	envLoaded = true
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: loading .env: %v", err)
	}
}
