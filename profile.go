package ascent

import (
	"errors"
	"fmt"
	"time"

	"github.com/etnz/ascent/date"
	"github.com/google/uuid"
)

// DefaultCurrency is the reporting currency used until the user picks one.
const DefaultCurrency = "RUB"

// xpPerLevel is the amount of experience separating two consecutive levels.
const xpPerLevel = 1000

// ErrNoMoves is returned when an arena action requires a move the profile
// does not have.
var ErrNoMoves = errors.New("no moves left")

// FinancialSnapshot is the user's self-declared financial position. It is a
// whole value: updates replace it entirely, never field by field.
type FinancialSnapshot struct {
	TotalAssets     Money  `json:"total_assets"`
	TotalDebts      Money  `json:"total_debts"`
	MonthlyIncome   Money  `json:"monthly_income"`
	MonthlyExpenses Money  `json:"monthly_expenses"`
	Currency        string `json:"currency"`
}

// EnergyProfile describes when the user is usually at peak or low energy.
// Hours are in the 0..23 range.
type EnergyProfile struct {
	PeakHours []int `json:"peak_hours"`
	LowHours  []int `json:"low_hours"`
}

func validHours(hours []int) error {
	for _, h := range hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("hour %d out of range [0,23]", h)
		}
	}
	return nil
}

// Profile holds the user's identity and gamified currencies. All mutations
// happen through its methods; persistence is the caller's concern.
type Profile struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	XP         int               `json:"xp"`
	Level      int               `json:"level"`
	Streak     int               `json:"streak"`
	LastActive date.Date         `json:"last_active"`
	Moves      int               `json:"moves"`
	Snapshot   FinancialSnapshot `json:"snapshot"`
	Energy     EnergyProfile     `json:"energy"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// DefaultProfile returns the profile created on first run.
func DefaultProfile() *Profile {
	now := time.Now()
	return &Profile{
		ID:    uuid.NewString(),
		Name:  "Player",
		Level: 1,
		Moves: 3,
		Snapshot: FinancialSnapshot{
			TotalAssets:     M(0, DefaultCurrency),
			TotalDebts:      M(0, DefaultCurrency),
			MonthlyIncome:   M(0, DefaultCurrency),
			MonthlyExpenses: M(0, DefaultCurrency),
			Currency:        DefaultCurrency,
		},
		Energy: EnergyProfile{
			PeakHours: []int{9, 10, 11},
			LowHours:  []int{14, 15},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GainXP adds experience and recomputes the level from the fixed curve.
// Negative gains are ignored: experience never decreases.
func (p *Profile) GainXP(n int) {
	if n <= 0 {
		return
	}
	p.XP += n
	p.Level = 1 + p.XP/xpPerLevel
	p.touch()
}

// SpendMove consumes one move. It fails without mutation when the balance
// is exhausted.
func (p *Profile) SpendMove() error {
	if p.Moves <= 0 {
		return ErrNoMoves
	}
	p.Moves--
	p.touch()
	return nil
}

// GrantMoves credits n moves to the balance.
func (p *Profile) GrantMoves(n int) {
	if n <= 0 {
		return
	}
	p.Moves += n
	p.touch()
}

// Touch records activity on the given day and maintains the streak counter:
// same-day activity is a no-op, next-day activity extends the streak, and a
// gap resets it to 1.
func (p *Profile) Touch(on date.Date) {
	switch {
	case on == p.LastActive:
		return
	case !p.LastActive.IsZero() && on == p.LastActive.Add(1):
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActive = on
	p.touch()
}

func (p *Profile) touch() { p.UpdatedAt = time.Now() }

// ProfileUpdate carries the fields of a profile update. Nested sub-objects
// are replaced as whole values: a caller updating one snapshot field must
// supply the complete snapshot.
type ProfileUpdate struct {
	Name     *string
	Snapshot *FinancialSnapshot
	Energy   *EnergyProfile
}

// Apply merges the update into the profile. It is all-or-nothing: an invalid
// update leaves the profile untouched.
func (p *Profile) Apply(u ProfileUpdate) error {
	if u.Name != nil && *u.Name == "" {
		return errors.New("display name cannot be empty")
	}
	if u.Energy != nil {
		if err := validHours(u.Energy.PeakHours); err != nil {
			return fmt.Errorf("peak hours: %w", err)
		}
		if err := validHours(u.Energy.LowHours); err != nil {
			return fmt.Errorf("low hours: %w", err)
		}
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Snapshot != nil {
		p.Snapshot = *u.Snapshot
	}
	if u.Energy != nil {
		p.Energy = *u.Energy
	}
	p.touch()
	return nil
}

// NetWorth derives the profile's net worth from its snapshot.
func (p *Profile) NetWorth() Money {
	return p.Snapshot.TotalAssets.Sub(p.Snapshot.TotalDebts)
}
