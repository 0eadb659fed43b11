package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillgap-analyzer/internal/roadmap"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

func TestPrintAnalysis_ShowsGapsAndRoadmap(t *testing.T) {
	a := types.NewSkillGapAnalysis("user-1", "resume-1", "DevOps Engineer", "abc")
	a.TransitionType = types.TransitionLateral
	a.CriticalGaps = []types.SkillGap{
		{Name: "Kubernetes", PriorityScore: 82.5, CurrentLevel: 0, TargetLevel: 70, TimeEstimateHours: 160},
	}
	a.TransferableSkills = []types.TransferableSkill{
		{Name: "Python", Applicability: 85, Confidence: 0.9},
	}
	a.PrioritizedRoadmap = []types.RoadmapPhase{
		{Phase: 1, Skills: []string{"Kubernetes"}, DurationWeeks: 16, Milestone: "Close the critical gaps"},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(a)
	out := buf.String()

	assert.Contains(t, out, "DevOps Engineer")
	assert.Contains(t, out, "Kubernetes")
	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "Roadmap")
	assert.Contains(t, out, "lateral")
}

func TestPrintAnalysis_NilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintGaps_TruncatesLongLists(t *testing.T) {
	gaps := make([]types.SkillGap, 8)
	for i := range gaps {
		gaps[i] = types.SkillGap{Name: "Skill", PriorityScore: float64(80 - i)}
	}

	var buf bytes.Buffer
	NewPrinter(&buf).printGaps("Critical Gaps", gaps)

	assert.Contains(t, buf.String(), "and 3 more")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgress(roadmap.Report{
		CompletionProgress: 50,
		TotalGaps:          4,
		ClosedGaps:         2,
		Message:            "Great progress! Keep up the momentum.",
	})

	assert.Contains(t, buf.String(), "2 of 4")
}
