package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/skillgap-analyzer/internal/llm"
	"github.com/jonathan/skillgap-analyzer/internal/scoring"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Weights for single-skill confidence scoring.
const (
	levelWeight       = 0.3
	importanceWeight  = 0.3
	explanationWeight = 0.2
	exactNameBonus    = 0.2
)

// ConfidenceScore rates how confidently one skill/explanation pair supports a
// transfer claim: weighted current level and target importance, an
// explanation-strength heuristic, and a bonus when the skill name exactly
// equals the target skill name. Clamped to [0,1].
func ConfidenceScore(skill types.ResumeSkill, target types.TargetSkill, explanation string) float64 {
	score := levelWeight*(normalizedLevel(skill)/100) +
		importanceWeight*(target.Importance/100) +
		explanationWeight*explanationStrength(explanation)

	if strings.EqualFold(strings.TrimSpace(skill.Name), strings.TrimSpace(target.Name)) {
		score += exactNameBonus
	}

	return clamp(score, 0, 1)
}

func normalizedLevel(skill types.ResumeSkill) float64 {
	// NormalizeLevel already defaults unknown levels to 50.
	return scoring.NormalizeLevel(skill.Level)
}

// strongQualifiers and weakQualifiers adjust the explanation heuristic.
var (
	strongQualifiers = []string{"directly", "extensively", "proven", "expert", "daily", "core"}
	weakQualifiers   = []string{"somewhat", "partially", "basic", "limited", "occasionally", "tangentially"}
)

// explanationStrength scores an explanation by length and qualifier words.
func explanationStrength(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	score := 0.4
	words := len(strings.Fields(text))
	switch {
	case words >= 15:
		score += 0.3
	case words >= 8:
		score += 0.2
	case words >= 4:
		score += 0.1
	}

	lower := strings.ToLower(text)
	for _, q := range strongQualifiers {
		if strings.Contains(lower, q) {
			score += 0.15
			break
		}
	}
	for _, q := range weakQualifiers {
		if strings.Contains(lower, q) {
			score -= 0.15
			break
		}
	}

	return clamp(score, 0, 1)
}

const explainPrompt = `In one sentence, explain how the skill "%s" transfers to a "%s" role.
Return a JSON object: {"explanation": "<one sentence>"}`

// ExplainTransfer produces a one-sentence rationale for a single skill
// transfer. It runs under the matcher's timeout and must never fail visibly:
// any error yields a generic templated sentence.
func (m *Matcher) ExplainTransfer(ctx context.Context, skill, targetRole string) string {
	fallback := fmt.Sprintf("Your experience with %s builds a foundation that applies to %s work.", skill, targetRole)
	if m.client == nil {
		return fallback
	}

	outcome := callWithDeadline(ctx, m.timeout, func(ctx context.Context) (string, error) {
		return m.client.GenerateJSON(ctx, fmt.Sprintf(explainPrompt, skill, targetRole), llm.TierLite)
	})
	if !outcome.ok() {
		return fallback
	}

	explanation := parseExplanation(outcome.value)
	if explanation == "" {
		return fallback
	}
	return explanation
}

// parseExplanation pulls the explanation field out of the AI payload.
func parseExplanation(raw string) string {
	var resp struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return ""
	}
	return strings.TrimSpace(resp.Explanation)
}
