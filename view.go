package ascent

// View names one screen of the application.
type View string

const (
	ViewLanding   View = "landing"
	ViewDashboard View = "dashboard"
	ViewGoals     View = "goals"
	ViewFinance   View = "finance"
	ViewSocial    View = "social"
	ViewAnalytics View = "analytics"
	ViewSettings  View = "settings"
	ViewFocus     View = "focus"
)

// Router holds the single active view and the focus-mode sub-state. All
// transitions are unconditional assignments.
type Router struct {
	current   View
	focusTask string
}

// NewRouter starts on the landing view.
func NewRouter() *Router { return &Router{current: ViewLanding} }

// Current returns the active view.
func (r *Router) Current() View { return r.current }

// FocusTask returns the id of the task in focus, or "" outside focus mode.
func (r *Router) FocusTask() string { return r.focusTask }

// NavigateTo switches the active view. Leaving the focus view implicitly
// clears the focused task.
func (r *Router) NavigateTo(v View) {
	r.current = v
	if v != ViewFocus {
		r.focusTask = ""
	}
}

// EnterFocus switches to the focus view on the given task.
func (r *Router) EnterFocus(taskID string) {
	r.current = ViewFocus
	r.focusTask = taskID
}

// Chrome reports whether the global chrome (header, tab bar) is visible.
// Focus mode hides it.
func (r *Router) Chrome() bool { return r.current != ViewFocus }
