package ascent

import (
	"context"
	"errors"
	"sync"

	"github.com/etnz/ascent/advisor"
	"github.com/etnz/ascent/date"
	"github.com/google/uuid"
)

// Wizard orchestrates the guided goal-creation flow: validate the draft with
// the advisory service, decompose it into a plan, then commit the fully
// formed goal to the ledger. Partial wizard state is never persisted; a goal
// only becomes visible after Commit.
//
// Advisory calls are tagged with a monotonically increasing sequence number
// so a slow response cannot overwrite the result of a newer request.
type Wizard struct {
	svc    advisor.Service
	ledger *GoalLedger

	mu   sync.Mutex
	seq  uint64 // last issued request
	seen uint64 // newest request whose response was accepted
}

// NewWizard creates a wizard over the given advisory service and ledger.
func NewWizard(svc advisor.Service, ledger *GoalLedger) *Wizard {
	return &Wizard{svc: svc, ledger: ledger}
}

func (w *Wizard) begin() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	return w.seq
}

// accept reports whether the response for request 'seq' is still current.
// Responses arriving after a newer request has been answered are stale.
func (w *Wizard) accept(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq < w.seen {
		return false
	}
	w.seen = seq
	return true
}

// ValidateDraft asks the advisory service for a verdict on the draft. The
// second return value is false when a newer request has already been
// answered: the caller should discard the result instead of showing it.
// The service itself never fails hard; on transport trouble the verdict is
// the fixed optimistic fallback and the wizard still advances.
func (w *Wizard) ValidateDraft(ctx context.Context, value, title, metric string) (advisor.Validation, bool) {
	seq := w.begin()
	v := w.svc.ValidateGoal(ctx, value, title, metric)
	return v, w.accept(seq)
}

// Decompose asks the advisory service for a plan. Same staleness contract
// as ValidateDraft.
func (w *Wizard) Decompose(ctx context.Context, title, metric string, target float64, category Category) (advisor.Decomposition, bool) {
	seq := w.begin()
	d := w.svc.DecomposeGoal(ctx, title, metric, target, string(category))
	return d, w.accept(seq)
}

// Draft is the user-entered goal data the wizard collects before commit.
type Draft struct {
	Title       string
	Category    Category
	TypeTag     string
	Intent      string
	Definition  string
	Constraints string
	Risk        string
	Metric      string
	Target      float64
	Start       date.Date
	End         date.Date
	Private     bool
	MinStep     string // title of the daily minimum step, optional
}

func (d *Draft) validate() error {
	if d.Title == "" {
		return errors.New("goal title is required")
	}
	if d.Metric == "" {
		return errors.New("goal metric is required")
	}
	if d.Target <= 0 {
		return errors.New("goal target must be positive")
	}
	return nil
}

// Commit turns the draft and its decomposition into a goal and appends it,
// with its children, to the ledger in one step. A failed validation blocks
// the commit and nothing is stored.
func (w *Wizard) Commit(d Draft, plan advisor.Decomposition) (*YearGoal, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.Start.IsZero() {
		d.Start = date.Today()
	}
	if d.End.IsZero() {
		d.End = date.New(d.Start.Year(), 12, 31)
	}

	g := &YearGoal{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Category:    d.Category,
		TypeTag:     d.TypeTag,
		Phase:       PhaseAcceleration,
		Intent:      d.Intent,
		Definition:  d.Definition,
		Constraints: d.Constraints,
		Risk:        d.Risk,
		Metric:      d.Metric,
		TargetValue: d.Target,
		Start:       d.Start,
		End:         d.End,
		Status:      StatusActive,
		Private:     d.Private,
	}
	if d.MinStep != "" {
		g.MinStep = &MinStep{Title: d.MinStep}
	}
	for _, sg := range plan.SubGoals {
		g.SubGoals = append(g.SubGoals, SubGoal{
			ID:          uuid.NewString(),
			GoalID:      g.ID,
			Title:       sg.Title,
			Effort:      EffortAction,
			Metric:      sg.Metric,
			TargetValue: sg.TargetValue,
			Weight:      sg.Weight,
			Deadline:    d.Start.Add(sg.EstimatedDays),
		})
	}
	for _, p := range plan.Projects {
		g.Projects = append(g.Projects, Project{
			ID:             uuid.NewString(),
			GoalID:         g.ID,
			Title:          p.Title,
			EstimatedHours: p.EstimatedHours,
			Complexity:     p.Complexity,
		})
	}

	if err := w.ledger.Add(g); err != nil {
		return nil, err
	}
	return g, nil
}
