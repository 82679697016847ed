package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Gemini implements Service on top of the Gemini API.
type Gemini struct {
	// generate performs one model call and returns the raw text answer.
	// It is a field so tests can substitute a failing or canned transport.
	generate func(ctx context.Context, system, prompt string, wantJSON bool) (string, error)
}

// NewGemini creates the advisory client. The genai client reads its API key
// from the environment (GEMINI_API_KEY).
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Gemini{generate: func(ctx context.Context, system, prompt string, wantJSON bool) (string, error) {
		config := &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
		if wantJSON {
			config.ResponseMIMEType = "application/json"
		}
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("empty response from %s", model)
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	}}, nil
}

// ValidateGoal asks the model whether the goal draft is specific and
// measurable. Transport or parse failure yields the optimistic fallback.
func (g *Gemini) ValidateGoal(ctx context.Context, value, title, metric string) Validation {
	const system = `You are a goal-setting coach. Judge whether the yearly goal below is
specific, measurable and realistic. Answer with a JSON object:
{"isValid": bool, "feedback": string, "suggestedDeadlineMonths": number}.
Feedback is one or two encouraging sentences in the user's language.`

	prompt := fmt.Sprintf("Value: %s\nGoal: %s\nMetric: %s", value, title, metric)
	raw, err := g.generate(ctx, system, prompt, true)
	if err != nil {
		log.Printf("advisor: validate failed, using fallback: %v", err)
		return FallbackValidation()
	}
	var v Validation
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("advisor: validate answer unparseable, using fallback: %v", err)
		return FallbackValidation()
	}
	if v.SuggestedDeadlineMonths <= 0 {
		v.SuggestedDeadlineMonths = FallbackMonths
	}
	return v
}

// DecomposeGoal asks the model for a plan of sub-goals, projects and habits.
// Failure yields a single-step fallback plan so the wizard always completes.
func (g *Gemini) DecomposeGoal(ctx context.Context, title, metric string, target float64, category string) Decomposition {
	const system = `You are a goal-planning coach. Decompose the yearly goal below into
3-5 sub-goals, 0-3 projects and 1-3 daily habits. Answer with a JSON object:
{"subGoals": [{"title", "metric", "target_value", "weight", "estimated_days"}],
"projects": [{"title", "estimated_effort_hours", "complexity"}],
"suggestedHabits": [string]}. Weights are percentages summing to 100.`

	prompt := fmt.Sprintf("Goal: %s\nMetric: %s\nTarget: %v\nCategory: %s", title, metric, target, category)
	raw, err := g.generate(ctx, system, prompt, true)
	if err != nil {
		log.Printf("advisor: decompose failed, using fallback: %v", err)
		return FallbackDecomposition(title, metric, target)
	}
	var d Decomposition
	if err := json.Unmarshal([]byte(raw), &d); err != nil || len(d.SubGoals) == 0 {
		log.Printf("advisor: decompose answer unparseable, using fallback: %v", err)
		return FallbackDecomposition(title, metric, target)
	}
	return d
}

// FocusMantra asks for a one-line mantra for the task about to be started.
func (g *Gemini) FocusMantra(ctx context.Context, taskTitle string) string {
	const system = `You write one short motivational sentence (a mantra) for the task the
user is about to focus on. One sentence, no quotes, user's language.`

	raw, err := g.generate(ctx, system, "Task: "+taskTitle, false)
	if err != nil || strings.TrimSpace(raw) == "" {
		log.Printf("advisor: mantra failed, using fallback: %v", err)
		return FallbackMantra
	}
	return strings.TrimSpace(raw)
}

// Chat answers a free-form message with the arena situation as context.
func (g *Gemini) Chat(ctx context.Context, message string, history []string, game GameContext) string {
	const system = `You are the in-game financial coach of a life-gamification board game.
Reply briefly and concretely to the player, in the player's language, using
the game context when relevant.`

	var b strings.Builder
	gameJSON, _ := json.Marshal(game)
	fmt.Fprintf(&b, "Game context: %s\n", gameJSON)
	for _, h := range history {
		fmt.Fprintf(&b, "History: %s\n", h)
	}
	fmt.Fprintf(&b, "Player: %s", message)

	raw, err := g.generate(ctx, system, b.String(), false)
	if err != nil || strings.TrimSpace(raw) == "" {
		log.Printf("advisor: chat failed, using fallback: %v", err)
		return FallbackReply
	}
	return strings.TrimSpace(raw)
}
