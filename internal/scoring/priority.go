package scoring

import (
	"sort"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Weights for the priority-score components. Impact dominates, but a fast,
// in-demand skill can outrank a slightly higher-impact slow one.
const (
	impactWeight    = 0.30
	timeWeight      = 0.25
	demandWeight    = 0.20
	capitalWeight   = 0.15
	velocityWeight  = 0.10
	timeCapHours    = 200.0
	criticalCutoff  = 70.0 // importance at or above this makes a gap critical
)

// PriorityInputs are the five factors feeding the priority score.
// Importance, MarketDemand, and CareerCapital are pre-normalized to 0-100;
// LearningVelocity is ~1.0 for an average learner.
type PriorityInputs struct {
	Importance         float64
	TimeToAcquireHours float64
	MarketDemand       float64
	CareerCapital      float64
	LearningVelocity   float64
}

// PriorityScore computes the 0-100 weighted composite score for a gap.
// The time component is capped at 200 hours: less time to acquire means a
// higher score.
func PriorityScore(in PriorityInputs) float64 {
	impact := in.Importance / 100

	timeRatio := in.TimeToAcquireHours / timeCapHours
	if timeRatio > 1 {
		timeRatio = 1
	}
	timeScore := 1 - timeRatio

	demand := in.MarketDemand / 100
	capital := in.CareerCapital / 100
	velocity := in.LearningVelocity

	return 100 * (impactWeight*impact +
		timeWeight*timeScore +
		demandWeight*demand +
		capitalWeight*capital +
		velocityWeight*velocity)
}

// ScoreGap fills in the derived PriorityScore for a gap. Career capital is
// taken as the gap's importance when no separate signal exists, and velocity
// defaults to the average learner.
func ScoreGap(gap *types.SkillGap, careerCapital, learningVelocity float64) {
	if careerCapital == 0 {
		careerCapital = gap.Importance
	}
	if learningVelocity == 0 {
		learningVelocity = 1.0
	}
	gap.PriorityScore = PriorityScore(PriorityInputs{
		Importance:         gap.Importance,
		TimeToAcquireHours: gap.TimeEstimateHours,
		MarketDemand:       gap.MarketDemand,
		CareerCapital:      careerCapital,
		LearningVelocity:   learningVelocity,
	})
}

// RankGaps sorts gaps by priority score descending. Ties break by higher
// importance, then alphabetically by name, so rankings are deterministic.
func RankGaps(gaps []types.SkillGap) {
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].PriorityScore != gaps[j].PriorityScore {
			return gaps[i].PriorityScore > gaps[j].PriorityScore
		}
		if gaps[i].Importance != gaps[j].Importance {
			return gaps[i].Importance > gaps[j].Importance
		}
		return gaps[i].Name < gaps[j].Name
	})
}

// SplitGaps partitions ranked gaps into critical and nice-to-have lists by
// importance. Relative order within each list is preserved.
func SplitGaps(gaps []types.SkillGap) (critical, niceToHave []types.SkillGap) {
	for _, gap := range gaps {
		if gap.Importance >= criticalCutoff {
			critical = append(critical, gap)
		} else {
			niceToHave = append(niceToHave, gap)
		}
	}
	return critical, niceToHave
}
