package roadmap

import (
	"sort"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Trajectory reports the improvement rate between the earliest and latest
// analyses for the same (user, target role).
type Trajectory struct {
	Delta       float64 `json:"delta"`        // latest minus earliest completion progress
	ElapsedDays float64 `json:"elapsed_days"` // between earliest and latest CreatedAt
	RatePerDay  float64 `json:"rate_per_day"` // Delta / ElapsedDays, 0 when no time elapsed
	Points      int     `json:"points"`       // number of analyses considered
}

// ComputeTrajectory compares historical analyses sorted by creation time.
// Fewer than two points yields no trajectory.
func ComputeTrajectory(history []types.HistoricalAnalysisSummary) *Trajectory {
	if len(history) < 2 {
		return nil
	}

	sorted := append([]types.HistoricalAnalysisSummary(nil), history...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	earliest := sorted[0]
	latest := sorted[len(sorted)-1]

	delta := latest.CompletionProgress - earliest.CompletionProgress
	elapsedDays := latest.CreatedAt.Sub(earliest.CreatedAt).Hours() / 24

	rate := 0.0
	if elapsedDays > 0 {
		rate = delta / elapsedDays
	}

	return &Trajectory{
		Delta:       delta,
		ElapsedDays: elapsedDays,
		RatePerDay:  rate,
		Points:      len(sorted),
	}
}
