package roadmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

func TestComputeTrajectory_NinetyDayImprovement(t *testing.T) {
	now := time.Now()
	history := []types.HistoricalAnalysisSummary{
		{CompletionProgress: 0, CreatedAt: now.AddDate(0, 0, -90)},
		{CompletionProgress: 40, CreatedAt: now},
	}

	trajectory := ComputeTrajectory(history)

	require.NotNil(t, trajectory)
	assert.Equal(t, 40.0, trajectory.Delta)
	assert.InDelta(t, 90.0, trajectory.ElapsedDays, 0.01)
	assert.InDelta(t, 40.0/90.0, trajectory.RatePerDay, 0.001)
	assert.Equal(t, 2, trajectory.Points)
}

func TestComputeTrajectory_FewerThanTwoPoints(t *testing.T) {
	assert.Nil(t, ComputeTrajectory(nil))
	assert.Nil(t, ComputeTrajectory([]types.HistoricalAnalysisSummary{
		{CompletionProgress: 20, CreatedAt: time.Now()},
	}))
}

func TestComputeTrajectory_UnsortedInput(t *testing.T) {
	now := time.Now()
	history := []types.HistoricalAnalysisSummary{
		{CompletionProgress: 40, CreatedAt: now},
		{CompletionProgress: 10, CreatedAt: now.AddDate(0, 0, -30)},
		{CompletionProgress: 25, CreatedAt: now.AddDate(0, 0, -15)},
	}

	trajectory := ComputeTrajectory(history)

	require.NotNil(t, trajectory)
	assert.Equal(t, 30.0, trajectory.Delta) // 40 - 10, earliest vs latest
	assert.Equal(t, 3, trajectory.Points)
}

func TestComputeTrajectory_RegressionRepresentable(t *testing.T) {
	now := time.Now()
	history := []types.HistoricalAnalysisSummary{
		{CompletionProgress: 60, CreatedAt: now.AddDate(0, 0, -10)},
		{CompletionProgress: 45, CreatedAt: now},
	}

	trajectory := ComputeTrajectory(history)

	require.NotNil(t, trajectory)
	assert.Equal(t, -15.0, trajectory.Delta)
	assert.Negative(t, trajectory.RatePerDay)
}

func TestComputeTrajectory_SameTimestampNoRate(t *testing.T) {
	now := time.Now()
	history := []types.HistoricalAnalysisSummary{
		{CompletionProgress: 10, CreatedAt: now},
		{CompletionProgress: 30, CreatedAt: now},
	}

	trajectory := ComputeTrajectory(history)

	require.NotNil(t, trajectory)
	assert.Equal(t, 0.0, trajectory.RatePerDay)
}
