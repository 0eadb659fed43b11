package affiliate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

func sampleCourses() []types.Course {
	return []types.Course{
		{Title: "Kubernetes Deep Dive", Provider: "acme", Price: 89.99, Rating: 4.7, EstimatedHours: 24},
		{Title: "Intro to Containers", Provider: "acme", Price: 19.99, Rating: 4.2, EstimatedHours: 6},
		{Title: "Cloud Native Patterns", Provider: "orbit", Price: 49.99, Rating: 4.9, EstimatedHours: 18},
		{Title: "Docker Fundamentals", Provider: "orbit", Price: 0, Rating: 4.5, EstimatedHours: 8},
	}
}

func TestRankCourses_ByRatingDescendingByDefault(t *testing.T) {
	ranked, err := RankCourses(sampleCourses(), SortRatingDesc, DefaultTopN)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "Cloud Native Patterns", ranked[0].Title)
	assert.Equal(t, "Kubernetes Deep Dive", ranked[1].Title)
	assert.Equal(t, "Docker Fundamentals", ranked[2].Title)
}

func TestRankCourses_ByPriceAscending(t *testing.T) {
	ranked, err := RankCourses(sampleCourses(), SortPriceAsc, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Docker Fundamentals", ranked[0].Title)
	assert.Equal(t, "Intro to Containers", ranked[1].Title)
}

func TestRankCourses_ByDurationDescending(t *testing.T) {
	ranked, err := RankCourses(sampleCourses(), SortDurationDesc, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Kubernetes Deep Dive", ranked[0].Title)
}

func TestRankCourses_UnknownSortKeyFails(t *testing.T) {
	_, err := RankCourses(sampleCourses(), SortKey("popularity"), DefaultTopN)
	assert.Error(t, err)
}

func TestRankCourses_FewerCoursesThanRequested(t *testing.T) {
	ranked, err := RankCourses(sampleCourses()[:2], SortRatingDesc, 10)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRankCourses_DoesNotMutateInput(t *testing.T) {
	courses := sampleCourses()
	_, err := RankCourses(courses, SortPriceDesc, DefaultTopN)
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes Deep Dive", courses[0].Title)
}

func TestTrackingID_DeterministicAndDistinct(t *testing.T) {
	analysisID := uuid.New()

	first := TrackingID("user-1", analysisID, "kubernetes")
	second := TrackingID("user-1", analysisID, "kubernetes")
	assert.Equal(t, first, second)

	otherSkill := TrackingID("user-1", analysisID, "terraform")
	assert.NotEqual(t, first, otherSkill)

	otherUser := TrackingID("user-2", analysisID, "kubernetes")
	assert.NotEqual(t, first, otherUser)
}
