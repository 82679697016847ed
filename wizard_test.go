package ascent

import (
	"context"
	"testing"

	"github.com/etnz/ascent/advisor"
	"github.com/etnz/ascent/date"
)

// stubAdvisor lets tests script the advisory service. The zero value acts
// like an unreachable service: every call answers with its fallback.
type stubAdvisor struct {
	validate  *advisor.Validation
	decompose *advisor.Decomposition
}

func (s *stubAdvisor) ValidateGoal(_ context.Context, value, title, metric string) advisor.Validation {
	if s.validate != nil {
		return *s.validate
	}
	return advisor.FallbackValidation()
}

func (s *stubAdvisor) DecomposeGoal(_ context.Context, title, metric string, target float64, category string) advisor.Decomposition {
	if s.decompose != nil {
		return *s.decompose
	}
	return advisor.FallbackDecomposition(title, metric, target)
}

func (s *stubAdvisor) FocusMantra(context.Context, string) string { return advisor.FallbackMantra }

func (s *stubAdvisor) Chat(context.Context, string, []string, advisor.GameContext) string {
	return advisor.FallbackReply
}

func TestValidateDraft_UnreachableServiceStillAdvances(t *testing.T) {
	w := NewWizard(&stubAdvisor{}, NewGoalLedger())
	v, ok := w.ValidateDraft(context.Background(), "health", "Пробежать 1000 км", "км")
	if !ok {
		t.Fatal("fresh response reported stale")
	}
	if !v.IsValid || v.SuggestedDeadlineMonths != 12 {
		t.Errorf("fallback verdict = %+v, want optimistic {true, 12}", v)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	w := NewWizard(&stubAdvisor{}, NewGoalLedger())
	// Simulate a slow first request answered after a second one: the first
	// sequence number loses.
	first := w.begin()
	second := w.begin()
	if !w.accept(second) {
		t.Fatal("newest response must be accepted")
	}
	if w.accept(first) {
		t.Error("stale response must be discarded")
	}
}

func TestCommit(t *testing.T) {
	ledger := NewGoalLedger()
	w := NewWizard(&stubAdvisor{}, ledger)

	plan, _ := w.Decompose(context.Background(), "Накопить 300000", "руб", 300000, CategoryFinance)
	draft := Draft{
		Title:    "Накопить 300000",
		Category: CategoryFinance,
		Metric:   "руб",
		Target:   300000,
		Start:    date.MustParse("2026-01-01"),
		MinStep:  "Отложить 100 рублей",
	}
	g, err := w.Commit(draft, plan)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if ledger.Get(g.ID) == nil {
		t.Fatal("committed goal is not in the ledger")
	}
	if g.Status != StatusActive || g.Phase != PhaseAcceleration {
		t.Errorf("status/phase = %s/%s", g.Status, g.Phase)
	}
	if len(g.SubGoals) != 1 {
		t.Fatalf("sub-goals = %d, want the fallback single step", len(g.SubGoals))
	}
	if g.SubGoals[0].GoalID != g.ID {
		t.Error("sub-goal not linked to its goal")
	}
	if g.MinStep == nil || g.MinStep.Title != "Отложить 100 рублей" {
		t.Errorf("min step = %+v", g.MinStep)
	}
	if g.End != date.MustParse("2026-12-31") {
		t.Errorf("default end = %s, want end of start year", g.End)
	}
}

func TestCommit_RejectsIncompleteDrafts(t *testing.T) {
	w := NewWizard(&stubAdvisor{}, NewGoalLedger())
	testCases := []struct {
		name  string
		draft Draft
	}{
		{name: "missing title", draft: Draft{Metric: "km", Target: 10}},
		{name: "missing metric", draft: Draft{Title: "goal", Target: 10}},
		{name: "non-positive target", draft: Draft{Title: "goal", Metric: "km", Target: 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := w.Commit(tc.draft, advisor.Decomposition{}); err == nil {
				t.Error("Commit accepted an invalid draft")
			}
		})
	}
}
