package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

func TestMemory_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "hash-a")
	require.NoError(t, m.Insert(ctx, a))

	got, err := m.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Data Engineer", got.TargetRole)
	assert.Equal(t, 0, got.Metadata.AffiliateClicks)
}

func TestMemory_GetAbsentReturnsNilNil(t *testing.T) {
	m := NewMemory()
	got, err := m.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_InsertDuplicateFails(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "hash-a")
	require.NoError(t, m.Insert(ctx, a))
	assert.Error(t, m.Insert(ctx, a))
}

func TestMemory_FindByFingerprintReturnsNewest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	older := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "hash-old")
	older.CreatedAt = time.Now().Add(-48 * time.Hour)
	newer := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "hash-new")
	require.NoError(t, m.Insert(ctx, older))
	require.NoError(t, m.Insert(ctx, newer))

	got, err := m.FindByFingerprint(ctx, "resume-1", "Data Engineer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-new", got.ContentHash)
}

func TestMemory_ListByUserAndRoleOrdered(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "h1")
	first.CreatedAt = time.Now().Add(-72 * time.Hour)
	first.CompletionProgress = 10
	second := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "h2")
	second.CompletionProgress = 40
	other := types.NewSkillGapAnalysis("user-2", "resume-9", "Data Engineer", "h3")
	require.NoError(t, m.Insert(ctx, first))
	require.NoError(t, m.Insert(ctx, second))
	require.NoError(t, m.Insert(ctx, other))

	summaries, err := m.ListByUserAndRole(ctx, "user-1", "Data Engineer")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 10.0, summaries[0].CompletionProgress)
	assert.Equal(t, 40.0, summaries[1].CompletionProgress)
}

func TestMemory_PatchOperations(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "hash-a")
	require.NoError(t, m.Insert(ctx, a))

	now := time.Now().UTC()
	require.NoError(t, m.UpdateProgress(ctx, a.ID, 55, now))
	require.NoError(t, m.IncrementClicks(ctx, a.ID, now))
	require.NoError(t, m.IncrementClicks(ctx, a.ID, now))
	require.NoError(t, m.IncrementConversions(ctx, a.ID, 12.50, now))

	got, err := m.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.CompletionProgress)
	assert.Equal(t, 2, got.Metadata.AffiliateClicks)
	assert.Equal(t, 1, got.Metadata.AffiliateConversions)
	assert.Equal(t, 12.50, got.Metadata.Revenue)
	require.NotNil(t, got.Metadata.LastProgressUpdate)
	assert.Equal(t, a.CreatedAt.Unix(), got.CreatedAt.Unix()) // CreatedAt immutable
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a := types.NewSkillGapAnalysis("user-1", "resume-1", "Data Engineer", "hash-a")
	a.CriticalGaps = []types.SkillGap{{Name: "Spark", Importance: 90}}
	require.NoError(t, m.Insert(ctx, a))

	got, _ := m.Get(ctx, a.ID)
	got.CriticalGaps[0].Name = "mutated"

	again, _ := m.Get(ctx, a.ID)
	assert.Equal(t, "Spark", again.CriticalGaps[0].Name)
}
