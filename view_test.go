package ascent

import "testing"

func TestRouterNavigation(t *testing.T) {
	r := NewRouter()
	if r.Current() != ViewLanding {
		t.Fatalf("initial view = %s, want landing", r.Current())
	}
	if !r.Chrome() {
		t.Error("chrome must be visible outside focus mode")
	}

	r.NavigateTo(ViewFinance)
	if r.Current() != ViewFinance {
		t.Errorf("view = %s, want finance", r.Current())
	}

	r.EnterFocus("task-42")
	if r.Current() != ViewFocus || r.FocusTask() != "task-42" {
		t.Errorf("focus state = %s/%q", r.Current(), r.FocusTask())
	}
	if r.Chrome() {
		t.Error("chrome must be hidden in focus mode")
	}

	// Leaving focus clears the focused task.
	r.NavigateTo(ViewDashboard)
	if r.FocusTask() != "" {
		t.Errorf("focus task = %q, want empty after leaving focus", r.FocusTask())
	}
}
