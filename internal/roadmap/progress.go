package roadmap

import (
	"math"
	"time"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Report is the reporting-only view of how far a user has come on one
// analysis. ClosedGaps is derived from the stored completion percentage, not
// recounted from gap state.
type Report struct {
	CompletionProgress float64 `json:"completion_progress"`
	TotalGaps          int     `json:"total_gaps"`
	ClosedGaps         int     `json:"closed_gaps"`
	Message            string  `json:"message"`
}

// ProgressReport computes the closed-gap estimate and motivational tier for
// an analysis.
func ProgressReport(a *types.SkillGapAnalysis) Report {
	total := a.TotalGaps()
	progress := clampProgress(a.CompletionProgress)

	return Report{
		CompletionProgress: progress,
		TotalGaps:          total,
		ClosedGaps:         int(math.Round(progress / 100 * float64(total))),
		Message:            motivationalMessage(progress),
	}
}

// motivationalMessage tiers: 0-25, 26-75, 76-99, 100.
func motivationalMessage(progress float64) string {
	switch {
	case progress >= 100:
		return "Congratulations! You've closed every gap in this roadmap."
	case progress > 75:
		return "Almost there! The finish line is in sight."
	case progress > 25:
		return "Great progress! Keep the momentum going."
	default:
		return "Keep learning! Every hour moves you closer to the target role."
	}
}

// ApplyProgress sets completion progress on an analysis, clamped to [0,100],
// and stamps the progress-update time and UpdatedAt. The stored value comes
// from the caller; this engine only normalizes and records it.
func ApplyProgress(a *types.SkillGapAnalysis, progress float64, now time.Time) {
	a.CompletionProgress = clampProgress(progress)
	updateTime := now
	a.Metadata.LastProgressUpdate = &updateTime
	a.UpdatedAt = now
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
