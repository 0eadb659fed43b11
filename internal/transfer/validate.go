package transfer

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// responseSchema checks the top-level shape of the AI response: an object
// whose transferableSkills field is an array of objects. Per-entry field
// checks happen in Go so a bad entry is dropped rather than failing the whole
// response.
const responseSchema = `{
	"type": "object",
	"required": ["transferableSkills"],
	"properties": {
		"transferableSkills": {
			"type": "array",
			"items": {"type": "object"}
		},
		"transferPatterns": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

// aiTransferEntry mirrors one element of the AI response.
type aiTransferEntry struct {
	SkillName     string   `json:"skillName"`
	CurrentLevel  *float64 `json:"currentLevel"`
	Applicability *float64 `json:"applicabilityToTarget"`
	Rationale     string   `json:"transferRationale"`
	Confidence    *float64 `json:"confidence"`
}

type aiTransferResponse struct {
	TransferableSkills []aiTransferEntry `json:"transferableSkills"`
	TransferPatterns   []string          `json:"transferPatterns"`
}

// parseAIResponse validates the raw AI payload and converts it to domain
// entries. Entries missing required fields are dropped; numeric fields are
// clamped. An absent or empty transferableSkills array is an error: the
// caller must fall back rather than accept an empty "success".
func parseAIResponse(raw string) ([]types.TransferableSkill, []string, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(responseSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		return nil, nil, fmt.Errorf("response shape invalid: %v", result.Errors())
	}

	var resp aiTransferResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var transfers []types.TransferableSkill
	for _, entry := range resp.TransferableSkills {
		if entry.SkillName == "" || entry.CurrentLevel == nil || entry.Applicability == nil ||
			entry.Rationale == "" || entry.Confidence == nil {
			continue
		}
		transfers = append(transfers, types.TransferableSkill{
			Name:          entry.SkillName,
			CurrentLevel:  clamp(*entry.CurrentLevel, 0, 100),
			Applicability: clamp(*entry.Applicability, 0, 100),
			Rationale:     entry.Rationale,
			Confidence:    clamp(*entry.Confidence, 0, 1),
		})
	}
	if len(transfers) == 0 {
		return nil, nil, fmt.Errorf("response contained no valid transferable skills")
	}

	return transfers, resp.TransferPatterns, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
