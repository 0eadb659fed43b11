package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/skillgap-analyzer/internal/llm"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// DefaultTimeout bounds the AI call. Past it the baseline matcher answers.
const DefaultTimeout = 30 * time.Second

// ResultSource records which path produced a match result.
type ResultSource string

const (
	SourceAI       ResultSource = "ai"
	SourceBaseline ResultSource = "baseline"
)

// MatchResult is the output of transferable-skill matching.
type MatchResult struct {
	TransferableSkills []types.TransferableSkill `json:"transferable_skills"`
	TransferPatterns   []string                  `json:"transfer_patterns,omitempty"`
	Source             ResultSource              `json:"source"`
}

// Matcher orchestrates AI-backed transfer matching with a deterministic
// fallback. The cache is a constructor dependency, not ambient state.
type Matcher struct {
	client  llm.Client
	cache   *MemoCache
	timeout time.Duration
}

// MatcherConfig holds matcher construction options.
type MatcherConfig struct {
	Timeout time.Duration
}

// NewMatcher creates a matcher. client may be nil, in which case every match
// uses the baseline path. cache must not be nil.
func NewMatcher(client llm.Client, cache *MemoCache, config *MatcherConfig) *Matcher {
	timeout := DefaultTimeout
	if config != nil && config.Timeout > 0 {
		timeout = config.Timeout
	}
	return &Matcher{client: client, cache: cache, timeout: timeout}
}

const matchPrompt = `You are a career advisor identifying which of a candidate's skills transfer to a new role.

CURRENT ROLE: %s
TARGET ROLE: %s

CANDIDATE SKILLS:
%s

TARGET ROLE SKILLS:
%s

For each candidate skill that meaningfully applies to the target role, explain why it transfers.
Also list recurring transfer patterns you notice (e.g. "analytical skills carry over").

Return a JSON object with this exact structure:
{
  "transferableSkills": [
    {
      "skillName": "<candidate skill name>",
      "currentLevel": <0-100>,
      "applicabilityToTarget": <0-100>,
      "transferRationale": "<why this skill transfers>",
      "confidence": <0-1>
    }
  ],
  "transferPatterns": ["<pattern>"]
}

Return ONLY the JSON object, no markdown, no explanation.`

// FindTransferableSkills computes which current skills carry over to the
// target role. The AI path runs under the timeout; on timeout, transport
// error, or a malformed response the baseline matcher answers instead, so
// this never fails because the enrichment step failed. Results from either
// path are memoized.
func (m *Matcher) FindTransferableSkills(
	ctx context.Context,
	currentSkills []types.ResumeSkill,
	targetSkills []types.TargetSkill,
	currentRole, targetRole string,
) (*MatchResult, error) {
	key := CacheKey(skillNames(currentSkills), targetNames(targetSkills), currentRole, targetRole)
	if cached, ok := m.cache.Get(key); ok {
		return cached, nil
	}

	result := m.match(ctx, currentSkills, targetSkills, currentRole, targetRole)
	m.cache.Set(key, result)
	return result, nil
}

func (m *Matcher) match(
	ctx context.Context,
	currentSkills []types.ResumeSkill,
	targetSkills []types.TargetSkill,
	currentRole, targetRole string,
) *MatchResult {
	if m.client != nil {
		outcome := callWithDeadline(ctx, m.timeout, func(ctx context.Context) (string, error) {
			prompt := buildMatchPrompt(currentSkills, targetSkills, currentRole, targetRole)
			return m.client.GenerateJSON(ctx, prompt, llm.TierStandard)
		})

		switch {
		case outcome.timedOut:
			slog.Warn("transfer match timed out, using baseline",
				slog.String("target_role", targetRole))
		case outcome.err != nil:
			slog.Warn("transfer match failed, using baseline",
				slog.String("target_role", targetRole), slog.Any("error", outcome.err))
		default:
			transfers, patterns, err := parseAIResponse(outcome.value)
			if err != nil {
				slog.Warn("transfer match response malformed, using baseline",
					slog.String("target_role", targetRole), slog.Any("error", err))
				break
			}
			return &MatchResult{
				TransferableSkills: transfers,
				TransferPatterns:   patterns,
				Source:             SourceAI,
			}
		}
	}

	return &MatchResult{
		TransferableSkills: BaselineMatch(currentSkills, targetSkills),
		Source:             SourceBaseline,
	}
}

func buildMatchPrompt(currentSkills []types.ResumeSkill, targetSkills []types.TargetSkill, currentRole, targetRole string) string {
	var current strings.Builder
	for _, s := range currentSkills {
		level := s.Level
		if level == "" {
			level = "intermediate"
		}
		fmt.Fprintf(&current, "- %s (%s)\n", s.Name, level)
	}

	var target strings.Builder
	for _, s := range targetSkills {
		fmt.Fprintf(&target, "- %s (importance %.0f/100)\n", s.Name, s.Importance)
	}

	return fmt.Sprintf(matchPrompt, currentRole, targetRole, current.String(), target.String())
}

func skillNames(skills []types.ResumeSkill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

func targetNames(skills []types.TargetSkill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}
