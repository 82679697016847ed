package ascent

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/etnz/ascent/date"
	"github.com/google/uuid"
)

// Category classifies a yearly goal.
type Category string

const (
	CategoryFinance Category = "finance"
	CategorySport   Category = "sport"
	CategoryGrowth  Category = "growth"
	CategoryWork    Category = "work"
	CategoryOther   Category = "other"
)

// ParseCategory parses a category, defaulting to "other" for unknown input.
func ParseCategory(s string) Category {
	switch c := Category(s); c {
	case CategoryFinance, CategorySport, CategoryGrowth, CategoryWork, CategoryOther:
		return c
	default:
		return CategoryOther
	}
}

// Phase is the advisory lifecycle phase of a goal. Transitions are not
// enforced; the phase is a hint for coaching, nothing more.
type Phase string

const (
	PhaseAcceleration Phase = "acceleration"
	PhaseWork         Phase = "work"
	PhaseFatigue      Phase = "fatigue"
	PhasePause        Phase = "pause"
	PhaseFinish       Phase = "finish"
)

// EffortType classifies the kind of effort a sub-goal demands.
type EffortType string

const (
	EffortThinking EffortType = "thinking"
	EffortAction   EffortType = "action"
	EffortHabit    EffortType = "habit"
)

// GoalStatus is the lifecycle status of a goal. Goals are never hard-deleted;
// finishing one is a status change.
type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
)

// Minimum-step rewards: completing the daily minimum operational step moves
// the goal forward by 1% of its target and feeds the gamification loop.
const (
	MinStepShare = 0.01
	MinStepXP    = 50
	MinStepMoves = 1
)

// ErrMinStepDone is returned when the minimum step was already completed on
// the same day. The step is a daily action: it can be earned again tomorrow.
var ErrMinStepDone = errors.New("minimum step already completed today")

// ErrUnknownGoal is returned when a goal id does not resolve.
var ErrUnknownGoal = errors.New("unknown goal")

// MinStep is the goal's minimum operational step: the smallest daily action
// that still counts as progress, designed to preserve streaks on low-energy
// days.
type MinStep struct {
	Title       string    `json:"title"`
	Done        bool      `json:"done"`
	CompletedOn date.Date `json:"completed_on,omitzero"`
}

// ProgressLog is an append-only record of progress on a goal.
type ProgressLog struct {
	ID       string    `json:"id"`
	GoalID   string    `json:"goal_id"`
	Author   string    `json:"author"`
	Delta    float64   `json:"delta"`
	Verified bool      `json:"verified"`
	Verifier string    `json:"verifier,omitempty"`
	Honesty  int       `json:"honesty,omitempty"`
	Rating   int       `json:"rating,omitempty"`
	At       time.Time `json:"at"`
}

// SubGoal belongs to exactly one YearGoal.
type SubGoal struct {
	ID           string     `json:"id"`
	GoalID       string     `json:"goal_id"`
	Title        string     `json:"title"`
	Effort       EffortType `json:"effort"`
	Metric       string     `json:"metric"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Weight       int        `json:"weight"`
	Deadline     date.Date  `json:"deadline,omitzero"`
	Done         bool       `json:"done"`
}

// Project is a one-off piece of work supporting a goal.
type Project struct {
	ID             string  `json:"id"`
	GoalID         string  `json:"goal_id"`
	Title          string  `json:"title"`
	EstimatedHours float64 `json:"estimated_effort_hours"`
	Complexity     string  `json:"complexity"`
}

// YearGoal is a yearly objective with a measurable metric.
type YearGoal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    Category   `json:"category"`
	TypeTag     string     `json:"type_tag,omitempty"`
	Phase       Phase      `json:"phase"`
	Intent      string     `json:"intent,omitempty"`
	Definition  string     `json:"definition,omitempty"`
	Constraints string     `json:"constraints,omitempty"`
	Risk        string     `json:"risk,omitempty"`
	Metric      string     `json:"metric"`
	TargetValue float64    `json:"target_value"`
	// CurrentValue is monotonically non-decreasing and never clamped: it may
	// exceed TargetValue. Only the displayed percentage is clamped.
	CurrentValue float64       `json:"current_value"`
	Start        date.Date     `json:"start"`
	End          date.Date     `json:"end"`
	Status       GoalStatus    `json:"status"`
	Private      bool          `json:"private"`
	Logs         []ProgressLog `json:"logs,omitempty"`
	SubGoals     []SubGoal     `json:"sub_goals,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	MinStep      *MinStep      `json:"min_step,omitempty"`
}

// CompletionPercent returns round(current/target*100) clamped to [0,100].
// A zero target is treated as 1 so the percentage is always defined.
func (g *YearGoal) CompletionPercent() int {
	target := g.TargetValue
	if target == 0 {
		target = 1
	}
	pct := int(math.Round(g.CurrentValue / target * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// GoalLedger is the in-memory collection of yearly goals. Goals only enter
// the ledger fully formed, through the wizard's Commit.
type GoalLedger struct {
	goals []*YearGoal
	index map[string]*YearGoal
}

// NewGoalLedger creates an empty ledger.
func NewGoalLedger() *GoalLedger {
	return &GoalLedger{index: make(map[string]*YearGoal)}
}

// Add appends a goal to the ledger. The id must be unique.
func (l *GoalLedger) Add(g *YearGoal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if _, exists := l.index[g.ID]; exists {
		return fmt.Errorf("goal %q already in ledger", g.ID)
	}
	if g.Status == "" {
		g.Status = StatusActive
	}
	if g.Phase == "" {
		g.Phase = PhaseAcceleration
	}
	l.goals = append(l.goals, g)
	l.index[g.ID] = g
	return nil
}

// Get returns the goal with the given id, or nil.
func (l *GoalLedger) Get(id string) *YearGoal { return l.index[id] }

// Goals returns all goals in insertion order.
func (l *GoalLedger) Goals() []*YearGoal { return l.goals }

// Active returns the goals still in progress.
func (l *GoalLedger) Active() []*YearGoal {
	var active []*YearGoal
	for _, g := range l.goals {
		if g.Status == StatusActive {
			active = append(active, g)
		}
	}
	return active
}

// LogProgress appends a progress log and moves the goal's current value
// forward. The delta must be positive: the current value never decreases.
// Reaching the target completes the goal.
func (l *GoalLedger) LogProgress(goalID string, delta float64, author string) (*ProgressLog, error) {
	g := l.index[goalID]
	if g == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGoal, goalID)
	}
	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nil, fmt.Errorf("progress delta must be a positive number, got %v", delta)
	}
	entry := ProgressLog{
		ID:     uuid.NewString(),
		GoalID: goalID,
		Author: author,
		Delta:  delta,
		At:     time.Now(),
	}
	g.Logs = append(g.Logs, entry)
	g.CurrentValue += delta
	if g.CurrentValue >= g.TargetValue && g.TargetValue > 0 {
		g.Status = StatusCompleted
		g.Phase = PhaseFinish
	}
	return &g.Logs[len(g.Logs)-1], nil
}

// Verify marks an existing progress log as verified. Once verified a log
// stays verified.
func (l *GoalLedger) Verify(goalID, logID, verifier string, honesty int) error {
	g := l.index[goalID]
	if g == nil {
		return fmt.Errorf("%w: %q", ErrUnknownGoal, goalID)
	}
	for i := range g.Logs {
		if g.Logs[i].ID == logID {
			g.Logs[i].Verified = true
			g.Logs[i].Verifier = verifier
			g.Logs[i].Honesty = honesty
			return nil
		}
	}
	return fmt.Errorf("unknown progress log %q on goal %q", logID, goalID)
}

// CompleteMinStep marks the goal's minimum operational step done for the
// given day, bumps the goal's current value by 1% of its target, and grants
// the profile +50 XP and +1 move. The step is idempotent per day: a second
// call on the same date returns ErrMinStepDone without any mutation.
func (l *GoalLedger) CompleteMinStep(goalID string, on date.Date, p *Profile) error {
	g := l.index[goalID]
	if g == nil {
		return fmt.Errorf("%w: %q", ErrUnknownGoal, goalID)
	}
	if g.MinStep == nil {
		return fmt.Errorf("goal %q has no minimum step", goalID)
	}
	if g.MinStep.CompletedOn == on {
		return ErrMinStepDone
	}
	target := g.TargetValue
	if target == 0 {
		target = 1
	}
	g.MinStep.Done = true
	g.MinStep.CompletedOn = on
	g.CurrentValue += target * MinStepShare
	p.GainXP(MinStepXP)
	p.GrantMoves(MinStepMoves)
	p.Touch(on)
	return nil
}
