package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

func TestBuildRoadmap_BandsByPriorityScore(t *testing.T) {
	gaps := []types.SkillGap{
		{Name: "Spark", PriorityScore: 85, TimeEstimateHours: 40},
		{Name: "Airflow", PriorityScore: 72, TimeEstimateHours: 20},
		{Name: "Terraform", PriorityScore: 50, TimeEstimateHours: 30},
		{Name: "GraphQL", PriorityScore: 30, TimeEstimateHours: 10},
	}

	phases := BuildRoadmap(gaps, 10)

	require.Len(t, phases, 3)
	assert.Equal(t, []string{"Spark", "Airflow"}, phases[0].Skills)
	assert.Equal(t, []string{"Terraform"}, phases[1].Skills)
	assert.Equal(t, []string{"GraphQL"}, phases[2].Skills)
	assert.Equal(t, 1, phases[0].Phase)
	assert.Equal(t, 6, phases[0].DurationWeeks) // ceil(60h / 10h per week)
	assert.NotEmpty(t, phases[0].Milestone)
}

func TestBuildRoadmap_EmptyBandsSkippedAndRenumbered(t *testing.T) {
	gaps := []types.SkillGap{
		{Name: "Spark", PriorityScore: 85, TimeEstimateHours: 40},
		{Name: "GraphQL", PriorityScore: 30, TimeEstimateHours: 10},
	}

	phases := BuildRoadmap(gaps, 10)

	require.Len(t, phases, 2)
	assert.Equal(t, 1, phases[0].Phase)
	assert.Equal(t, 2, phases[1].Phase)
	assert.Equal(t, []string{"GraphQL"}, phases[1].Skills)
}

func TestBuildRoadmap_AvailabilityFloored(t *testing.T) {
	gaps := []types.SkillGap{{Name: "Spark", PriorityScore: 85, TimeEstimateHours: 4}}

	phases := BuildRoadmap(gaps, 0)

	require.Len(t, phases, 1)
	assert.Equal(t, 4, phases[0].DurationWeeks) // floored to 1h/week
}

func TestBuildRoadmap_NoGaps(t *testing.T) {
	assert.Empty(t, BuildRoadmap(nil, 10))
}

func TestTotalDurationWeeks(t *testing.T) {
	phases := []types.RoadmapPhase{{DurationWeeks: 3}, {DurationWeeks: 5}}
	assert.Equal(t, 8, TotalDurationWeeks(phases))
}
