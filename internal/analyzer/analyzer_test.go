package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillgap-analyzer/internal/occupation"
	"github.com/jonathan/skillgap-analyzer/internal/store"
	"github.com/jonathan/skillgap-analyzer/internal/transfer"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

type fakeTaxonomy struct {
	skills  map[string][]types.TargetSkill
	version string
	calls   int
}

func (f *fakeTaxonomy) SearchOccupations(_ context.Context, _ string) ([]occupation.Occupation, error) {
	return nil, nil
}

func (f *fakeTaxonomy) GetOccupationSkills(_ context.Context, code string) ([]types.TargetSkill, error) {
	f.calls++
	return f.skills[code], nil
}

func (f *fakeTaxonomy) DataVersion() string {
	return f.version
}

func newTestAnalyzer(t *testing.T) (*Analyzer, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	matcher := transfer.NewMatcher(nil, transfer.NewMemoCache(transfer.DefaultMemoCapacity, time.Now), nil)
	return New(mem, matcher, nil, "test-model"), mem
}

func devopsRequest() Request {
	return Request{
		UserID:      "user-1",
		ResumeID:    "resume-1",
		ResumeText:  "Five years of Python automation and Linux administration.",
		CurrentRole: "Systems Administrator",
		CurrentSkills: []types.ResumeSkill{
			{Name: "Python", Level: "advanced"},
			{Name: "Linux", Level: "expert"},
		},
		TargetRole: "DevOps Engineer",
		TargetSkills: []types.TargetSkill{
			{Name: "Python", Importance: 80, RequiredLevel: 60, MarketDemand: 80, HoursToAcquire: 120},
			{Name: "Kubernetes", Importance: 90, RequiredLevel: 70, MarketDemand: 90, HoursToAcquire: 160},
			{Name: "Terraform", Importance: 65, RequiredLevel: 60, MarketDemand: 75, HoursToAcquire: 80},
		},
		AvailabilityHours: 10,
	}
}

func TestAnalyze_ComputesAndPersists(t *testing.T) {
	a, mem := newTestAnalyzer(t)

	res, err := a.Analyze(context.Background(), devopsRequest())
	require.NoError(t, err)
	require.NotNil(t, res.Analysis)
	assert.False(t, res.FromCache)

	analysis := res.Analysis
	// Python at advanced (75) already clears the 60 requirement; the other
	// two targets are gaps.
	assert.Equal(t, 2, analysis.TotalGaps())
	gapNames := make([]string, 0, 2)
	for _, g := range append(analysis.CriticalGaps, analysis.NiceToHaveGaps...) {
		gapNames = append(gapNames, g.Name)
		assert.Greater(t, g.PriorityScore, 0.0)
	}
	assert.Contains(t, gapNames, "Kubernetes")
	assert.Contains(t, gapNames, "Terraform")

	assert.NotEmpty(t, analysis.TransferableSkills)
	assert.NotEmpty(t, analysis.PrioritizedRoadmap)
	assert.NotEmpty(t, analysis.ContentHash)
	assert.Equal(t, "test-model", analysis.Metadata.ModelID)

	stored, err := mem.Get(context.Background(), analysis.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestAnalyze_SplitsCriticalFromNiceToHave(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	res, err := a.Analyze(context.Background(), devopsRequest())
	require.NoError(t, err)

	require.Len(t, res.Analysis.CriticalGaps, 1)
	assert.Equal(t, "Kubernetes", res.Analysis.CriticalGaps[0].Name)
	require.Len(t, res.Analysis.NiceToHaveGaps, 1)
	assert.Equal(t, "Terraform", res.Analysis.NiceToHaveGaps[0].Name)
}

func TestAnalyze_SecondCallWithSameResumeHitsCache(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	req := devopsRequest()

	first, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.FromCache)
	assert.Equal(t, first.Analysis.ID, second.Analysis.ID)
}

func TestAnalyze_EditedResumeRecomputes(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	req := devopsRequest()

	first, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	req.ResumeText += "\nRecently completed a Kubernetes certification."
	second, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, second.FromCache)
	assert.NotEqual(t, first.Analysis.ID, second.Analysis.ID)
	assert.NotEqual(t, first.Analysis.ContentHash, second.Analysis.ContentHash)
}

func TestAnalyze_FetchesTargetSkillsFromTaxonomy(t *testing.T) {
	mem := store.NewMemory()
	matcher := transfer.NewMatcher(nil, transfer.NewMemoCache(transfer.DefaultMemoCapacity, time.Now), nil)
	taxonomy := &fakeTaxonomy{
		version: "2026.1",
		skills: map[string][]types.TargetSkill{
			"15-1252.00": {
				{Name: "Programming", Importance: 90, RequiredLevel: 80, HoursToAcquire: 300},
			},
		},
	}
	a := New(mem, matcher, taxonomy, "test-model")

	req := devopsRequest()
	req.TargetSkills = nil
	req.TargetOccupationCode = "15-1252.00"

	res, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, taxonomy.calls)
	assert.Equal(t, "2026.1", res.Analysis.Metadata.DataSourceVersion)
	assert.Equal(t, 1, res.Analysis.TotalGaps())
}

func TestAnalyze_RejectsIncompleteRequests(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	missingUser := devopsRequest()
	missingUser.UserID = ""
	_, err := a.Analyze(context.Background(), missingUser)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "user_id", vErr.Field)

	blankResume := devopsRequest()
	blankResume.ResumeText = "   "
	_, err = a.Analyze(context.Background(), blankResume)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "resume_text", vErr.Field)

	noTargets := devopsRequest()
	noTargets.TargetSkills = nil
	_, err = a.Analyze(context.Background(), noTargets)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "target_skills", vErr.Field)
}

func TestClassifyTransition(t *testing.T) {
	assert.Equal(t, types.TransitionLateral, classifyTransition("Backend Engineer", "Platform Engineer"))
	assert.Equal(t, types.TransitionUpward, classifyTransition("Software Engineer", "Senior Software Engineer"))
	assert.Equal(t, types.TransitionCareerChange, classifyTransition("Accountant", "Software Engineer"))
}

func TestUpdateProgress_ClampsAndReports(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	res, err := a.Analyze(context.Background(), devopsRequest())
	require.NoError(t, err)

	report, err := a.UpdateProgress(context.Background(), res.Analysis.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, float64(100), report.CompletionProgress)
	assert.Equal(t, 2, report.ClosedGaps)

	stored, err := a.Get(context.Background(), res.Analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), stored.CompletionProgress)
}

func TestUpdateProgress_UnknownAnalysis(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	_, err := a.UpdateProgress(context.Background(), uuid.New(), 10)
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestTrajectory_NeedsTwoAnalyses(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	ctx := context.Background()

	res, err := a.Analyze(ctx, devopsRequest())
	require.NoError(t, err)

	traj, err := a.Trajectory(ctx, "user-1", "DevOps Engineer")
	require.NoError(t, err)
	assert.Nil(t, traj)

	_, err = a.UpdateProgress(ctx, res.Analysis.ID, 20)
	require.NoError(t, err)

	later := devopsRequest()
	later.ResumeText += "\nShipped a Terraform module in production."
	second, err := a.Analyze(ctx, later)
	require.NoError(t, err)
	_, err = a.UpdateProgress(ctx, second.Analysis.ID, 60)
	require.NoError(t, err)

	traj, err = a.Trajectory(ctx, "user-1", "DevOps Engineer")
	require.NoError(t, err)
	require.NotNil(t, traj)
	assert.InDelta(t, 40, traj.Delta, 1e-9)
}
