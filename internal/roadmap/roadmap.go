// Package roadmap derives phased learning roadmaps from ranked skill gaps and
// computes progress and trajectory across historical analyses.
package roadmap

import (
	"fmt"
	"math"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Priority-score bands that place gaps into phases. Gaps at or above a band's
// floor land in that phase.
const (
	phaseOneFloor = 70.0
	phaseTwoFloor = 45.0
)

// minAvailabilityHours floors the weekly availability used for duration math.
const minAvailabilityHours = 1.0

var milestoneTitles = []string{
	"Close the critical gaps",
	"Build professional depth",
	"Round out the skill set",
}

// BuildRoadmap groups ranked gaps into ordered phases by priority-score band.
// Phase durations are the summed per-skill hour estimates divided by weekly
// availability. Empty bands are skipped and remaining phases renumbered.
func BuildRoadmap(rankedGaps []types.SkillGap, availabilityHoursPerWeek float64) []types.RoadmapPhase {
	if availabilityHoursPerWeek < minAvailabilityHours {
		availabilityHoursPerWeek = minAvailabilityHours
	}

	bands := make([][]types.SkillGap, 3)
	for _, gap := range rankedGaps {
		switch {
		case gap.PriorityScore >= phaseOneFloor:
			bands[0] = append(bands[0], gap)
		case gap.PriorityScore >= phaseTwoFloor:
			bands[1] = append(bands[1], gap)
		default:
			bands[2] = append(bands[2], gap)
		}
	}

	var phases []types.RoadmapPhase
	for i, band := range bands {
		if len(band) == 0 {
			continue
		}

		var skills []string
		totalHours := 0.0
		for _, gap := range band {
			skills = append(skills, gap.Name)
			totalHours += gap.TimeEstimateHours
		}

		phases = append(phases, types.RoadmapPhase{
			Phase:         len(phases) + 1,
			Skills:        skills,
			DurationWeeks: int(math.Ceil(totalHours / availabilityHoursPerWeek)),
			Milestone:     milestoneTitles[i],
		})
	}
	return phases
}

// TotalDurationWeeks sums phase durations for display.
func TotalDurationWeeks(phases []types.RoadmapPhase) int {
	total := 0
	for _, p := range phases {
		total += p.DurationWeeks
	}
	return total
}

// DescribePhase renders a one-line summary of a phase.
func DescribePhase(p types.RoadmapPhase) string {
	return fmt.Sprintf("Phase %d (%d weeks): %s", p.Phase, p.DurationWeeks, p.Milestone)
}
