package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/ascent"
	"github.com/google/subcommands"
)

// profileCmd shows or updates the profile.
type profileCmd struct {
	name     string
	assets   float64
	debts    float64
	income   float64
	expenses float64
	currency string
	peak     string
	low      string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or update the profile" }
func (*profileCmd) Usage() string {
	return `ascent profile [-name <name>] [-assets <v> -debts <v> -income <v> -expenses <v>] [-peak <hours> -low <hours>]

  Without flags, print the profile. The financial snapshot and the energy
  profile are replaced as whole values: updating one of them requires all
  its fields.

Usage Examples:
$ ascent profile -assets 500000 -debts 100000 -income 120000 -expenses 80000
$ ascent profile -peak 9,10,11 -low 14,15
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name.")
	f.Float64Var(&c.assets, "assets", -1, "Total assets for a new snapshot.")
	f.Float64Var(&c.debts, "debts", 0, "Total debts for a new snapshot.")
	f.Float64Var(&c.income, "income", 0, "Monthly income for a new snapshot.")
	f.Float64Var(&c.expenses, "expenses", 0, "Monthly expenses for a new snapshot.")
	f.StringVar(&c.currency, "c", ascent.DefaultCurrency, "Snapshot currency code.")
	f.StringVar(&c.peak, "peak", "", "Comma-separated peak-energy hours for a new energy profile.")
	f.StringVar(&c.low, "low", "", "Comma-separated low-energy hours for a new energy profile.")
}

func (c *profileCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := profileStore()
	profile := store.Load()

	var update ascent.ProfileUpdate
	if c.name != "" {
		update.Name = &c.name
	}
	if c.assets >= 0 {
		update.Snapshot = &ascent.FinancialSnapshot{
			TotalAssets:     ascent.M(c.assets, c.currency),
			TotalDebts:      ascent.M(c.debts, c.currency),
			MonthlyIncome:   ascent.M(c.income, c.currency),
			MonthlyExpenses: ascent.M(c.expenses, c.currency),
			Currency:        c.currency,
		}
	}
	if c.peak != "" || c.low != "" {
		peak, err := parseHours(c.peak)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: peak hours: %v\n", err)
			return subcommands.ExitUsageError
		}
		low, err := parseHours(c.low)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: low hours: %v\n", err)
			return subcommands.ExitUsageError
		}
		update.Energy = &ascent.EnergyProfile{PeakHours: peak, LowHours: low}
	}

	if update.Name != nil || update.Snapshot != nil || update.Energy != nil {
		if err := profile.Apply(update); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := store.Save(profile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("%s, level %d (%d XP), streak %d days, %d moves\n",
		profile.Name, profile.Level, profile.XP, profile.Streak, profile.Moves)
	fmt.Printf("Net worth %s, income %s, expenses %s per month\n",
		profile.NetWorth(), profile.Snapshot.MonthlyIncome, profile.Snapshot.MonthlyExpenses)
	return subcommands.ExitSuccess
}

func parseHours(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var hours []int
	for _, part := range strings.Split(s, ",") {
		h, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, nil
}
