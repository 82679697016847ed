// Package ascent implements the state core of a personal goal-tracking and
// life-gamification application: a persisted user profile with experience,
// streaks and moves; a ledger of yearly goals with sub-goals and daily
// minimum steps; a personal finance ledger with derived metrics (net worth,
// monthly burn, freedom index); a small board-game economy; and a view
// router. External collaborators (the AI advisory service, the quote proxy
// and the lobby roster store) live in their own packages.
package ascent
