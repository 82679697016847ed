// Package advisor is the client for the external generative-AI advisory
// service. It exposes four operations: validating a goal draft, decomposing
// a goal into a plan, producing a short focus mantra, and answering a chat
// message with game context.
//
// Every operation degrades to a fixed fallback value on any transport or
// parse error. None of them ever surfaces an error to the caller: the
// application prioritises availability over strict gating.
package advisor

import "context"

// Validation is the advisory verdict on a goal draft.
type Validation struct {
	IsValid                 bool   `json:"isValid"`
	Feedback                string `json:"feedback"`
	SuggestedDeadlineMonths int    `json:"suggestedDeadlineMonths"`
}

// SubGoalPlan is one decomposed sub-goal.
type SubGoalPlan struct {
	Title         string  `json:"title"`
	Metric        string  `json:"metric"`
	TargetValue   float64 `json:"target_value"`
	Weight        int     `json:"weight"`
	EstimatedDays int     `json:"estimated_days"`
}

// ProjectPlan is one decomposed project.
type ProjectPlan struct {
	Title          string  `json:"title"`
	EstimatedHours float64 `json:"estimated_effort_hours"`
	Complexity     string  `json:"complexity"`
}

// Decomposition is the advisory plan for a goal.
type Decomposition struct {
	SubGoals        []SubGoalPlan `json:"subGoals"`
	Projects        []ProjectPlan `json:"projects"`
	SuggestedHabits []string      `json:"suggestedHabits"`
}

// GameContext carries the arena situation into a chat request.
type GameContext struct {
	Cash             float64            `json:"cash"`
	Position         int                `json:"position"`
	OwnedAssetsCount int                `json:"ownedAssetsCount"`
	MarketIndices    map[string]float64 `json:"marketIndices,omitempty"`
}

// Service is the advisory contract. Implementations never return errors:
// they fall back to fixed defaults instead.
type Service interface {
	ValidateGoal(ctx context.Context, value, title, metric string) Validation
	DecomposeGoal(ctx context.Context, title, metric string, target float64, category string) Decomposition
	FocusMantra(ctx context.Context, taskTitle string) string
	Chat(ctx context.Context, message string, history []string, game GameContext) string
}

// Fallback values returned when the service is unreachable or its answer
// cannot be parsed. Availability beats strict gating: a failed validation
// lets the user through.
const (
	FallbackFeedback = "Хорошая цель. Двигайся небольшими шагами каждый день."
	FallbackMonths   = 12
	FallbackMantra   = "Один маленький шаг. Прямо сейчас."
	FallbackReply    = "Сейчас не могу ответить. Попробуй ещё раз чуть позже."
)

// FallbackValidation is the fixed optimistic verdict.
func FallbackValidation() Validation {
	return Validation{
		IsValid:                 true,
		Feedback:                FallbackFeedback,
		SuggestedDeadlineMonths: FallbackMonths,
	}
}

// FallbackDecomposition is a single-step plan so the wizard can always
// complete.
func FallbackDecomposition(title, metric string, target float64) Decomposition {
	return Decomposition{
		SubGoals: []SubGoalPlan{{
			Title:         "Первый шаг: " + title,
			Metric:        metric,
			TargetValue:   target,
			Weight:        100,
			EstimatedDays: 30,
		}},
		SuggestedHabits: []string{"Каждый день делать минимальный шаг"},
	}
}
