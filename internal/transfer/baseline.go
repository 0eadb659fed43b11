package transfer

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/skillgap-analyzer/internal/scoring"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// baselineThreshold is the inclusion gate for the deterministic matcher: a
// (current, target) pair below this similarity is not considered a transfer.
const baselineThreshold = 0.5

// directMatchBoundary separates "direct match" rationales from "similar to".
const directMatchBoundary = 0.9

// BaselineMatch is the deterministic, non-AI fallback. Every
// (currentSkill, targetSkill) pair with similarity above the threshold yields
// a transferable-skill entry whose confidence is the similarity itself, so
// confidence is always in (0.5, 1].
func BaselineMatch(currentSkills []types.ResumeSkill, targetSkills []types.TargetSkill) []types.TransferableSkill {
	var transfers []types.TransferableSkill
	for _, current := range currentSkills {
		for _, target := range targetSkills {
			sim := scoring.Similarity(current.Name, target.Name)
			if sim <= baselineThreshold {
				continue
			}

			rationale := fmt.Sprintf("similar to %s required by the target role", target.Name)
			if sim > directMatchBoundary {
				rationale = fmt.Sprintf("direct match for %s", target.Name)
			}

			transfers = append(transfers, types.TransferableSkill{
				Name:          current.Name,
				CurrentLevel:  scoring.NormalizeLevel(current.Level),
				Applicability: math.Round(sim * target.Importance),
				Rationale:     rationale,
				Confidence:    sim,
			})
		}
	}

	// Confidence descending, ties by name for determinism.
	sort.Slice(transfers, func(i, j int) bool {
		if transfers[i].Confidence != transfers[j].Confidence {
			return transfers[i].Confidence > transfers[j].Confidence
		}
		return transfers[i].Name < transfers[j].Name
	})
	return transfers
}
