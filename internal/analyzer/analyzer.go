package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillgap-analyzer/internal/analysiscache"
	"github.com/jonathan/skillgap-analyzer/internal/occupation"
	"github.com/jonathan/skillgap-analyzer/internal/roadmap"
	"github.com/jonathan/skillgap-analyzer/internal/scoring"
	"github.com/jonathan/skillgap-analyzer/internal/store"
	"github.com/jonathan/skillgap-analyzer/internal/transfer"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Analyzer runs the full skill-gap pipeline: hash the resume, resolve against
// stored analyses, and when needed compute gaps, transfers, and a roadmap,
// then persist the result.
type Analyzer struct {
	store    store.AnalysisStore
	gate     *analysiscache.Gate
	matcher  *transfer.Matcher
	provider occupation.Provider // nil when no taxonomy backend is configured
	modelID  string
	now      func() time.Time
}

// New wires the pipeline. provider may be nil; then every request must carry
// its target skills inline.
func New(st store.AnalysisStore, matcher *transfer.Matcher, provider occupation.Provider, modelID string) *Analyzer {
	return &Analyzer{
		store:    st,
		gate:     analysiscache.NewGate(st),
		matcher:  matcher,
		provider: provider,
		modelID:  modelID,
		now:      time.Now,
	}
}

// Request describes one analysis run.
type Request struct {
	UserID               string
	ResumeID             string
	ResumeText           string
	CurrentRole          string
	CurrentSkills        []types.ResumeSkill
	TargetRole           string
	TargetOccupationCode string
	// TargetSkills may be supplied inline; when empty and an occupation code
	// is set, they are fetched from the taxonomy provider.
	TargetSkills []types.TargetSkill
	// AvailabilityHours is how many hours per week the user can study.
	AvailabilityHours float64
	// CareerCapital optionally overrides the per-skill capital signal,
	// keyed by lowercase skill name. Defaults to the skill's importance.
	CareerCapital map[string]float64
	// LearningVelocity defaults to 1.0 when zero.
	LearningVelocity float64
}

// Result carries the analysis plus whether it was served from a stored record.
type Result struct {
	Analysis  *types.SkillGapAnalysis
	FromCache bool
}

// Analyze resolves the request against stored analyses by content hash and
// computes a fresh record on a miss. Two concurrent misses for the same
// fingerprint produce a single stored record.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	contentHash := analysiscache.Hash(req.ResumeText)

	analysis, fromCache, err := a.gate.ResolveOrCompute(ctx, req.ResumeID, req.TargetRole, contentHash,
		func(ctx context.Context) (*types.SkillGapAnalysis, error) {
			return a.compute(ctx, req, contentHash)
		})
	if err != nil {
		return nil, err
	}

	slog.Info("analysis resolved",
		slog.String("user_id", req.UserID),
		slog.String("target_role", req.TargetRole),
		slog.Bool("from_cache", fromCache))
	return &Result{Analysis: analysis, FromCache: fromCache}, nil
}

func validateRequest(req Request) error {
	switch {
	case req.UserID == "":
		return &ValidationError{Field: "user_id", Message: "required"}
	case req.ResumeID == "":
		return &ValidationError{Field: "resume_id", Message: "required"}
	case strings.TrimSpace(req.ResumeText) == "":
		return &ValidationError{Field: "resume_text", Message: "required"}
	case req.TargetRole == "":
		return &ValidationError{Field: "target_role", Message: "required"}
	case req.AvailabilityHours < 0:
		return &ValidationError{Field: "availability_hours", Message: "must not be negative"}
	}
	return nil
}

func (a *Analyzer) compute(ctx context.Context, req Request, contentHash string) (*types.SkillGapAnalysis, error) {
	targetSkills, err := a.resolveTargetSkills(ctx, req)
	if err != nil {
		return nil, err
	}

	gaps := buildGaps(req.CurrentSkills, targetSkills, req.CareerCapital, req.LearningVelocity)
	scoring.RankGaps(gaps)
	critical, niceToHave := scoring.SplitGaps(gaps)

	match, err := a.matcher.FindTransferableSkills(ctx, req.CurrentSkills, targetSkills, req.CurrentRole, req.TargetRole)
	if err != nil {
		return nil, fmt.Errorf("failed to match transferable skills: %w", err)
	}

	analysis := types.NewSkillGapAnalysis(req.UserID, req.ResumeID, req.TargetRole, contentHash)
	analysis.TargetOccupationCode = req.TargetOccupationCode
	analysis.CriticalGaps = critical
	analysis.NiceToHaveGaps = niceToHave
	analysis.TransferableSkills = match.TransferableSkills
	analysis.PrioritizedRoadmap = roadmap.BuildRoadmap(gaps, req.AvailabilityHours)
	analysis.UserAvailability = req.AvailabilityHours
	analysis.TransitionType = classifyTransition(req.CurrentRole, req.TargetRole)
	analysis.Metadata.ModelID = a.modelID
	if a.provider != nil {
		analysis.Metadata.DataSourceVersion = a.provider.DataVersion()
	}
	return analysis, nil
}

func (a *Analyzer) resolveTargetSkills(ctx context.Context, req Request) ([]types.TargetSkill, error) {
	if len(req.TargetSkills) > 0 {
		return req.TargetSkills, nil
	}
	if req.TargetOccupationCode == "" || a.provider == nil {
		return nil, &ValidationError{Field: "target_skills", Message: "required when no occupation code is given"}
	}

	skills, err := a.provider.GetOccupationSkills(ctx, req.TargetOccupationCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load target skills for %s: %w", req.TargetOccupationCode, err)
	}
	if len(skills) == 0 {
		return nil, &NotFoundError{Resource: "occupation skills", ID: req.TargetOccupationCode}
	}
	return skills, nil
}

// buildGaps pairs each target skill with the closest resume skill and emits a
// gap when the matched level falls short of the requirement. A target skill
// with no match above the similarity threshold counts as starting from zero.
func buildGaps(currentSkills []types.ResumeSkill, targetSkills []types.TargetSkill, capital map[string]float64, velocity float64) []types.SkillGap {
	gaps := make([]types.SkillGap, 0, len(targetSkills))

	for _, target := range targetSkills {
		currentLevel := 0.0
		if best, sim := closestSkill(currentSkills, target.Name); sim > 0.5 {
			currentLevel = scoring.NormalizeLevel(best.Level)
		}
		if currentLevel >= target.RequiredLevel {
			continue
		}

		gap := types.SkillGap{
			Name:              target.Name,
			Code:              target.Code,
			Importance:        target.Importance,
			CurrentLevel:      currentLevel,
			TargetLevel:       target.RequiredLevel,
			TimeEstimateHours: target.HoursToAcquire,
			MarketDemand:      target.MarketDemand,
		}
		scoring.ScoreGap(&gap, capital[strings.ToLower(target.Name)], velocity)
		gaps = append(gaps, gap)
	}
	return gaps
}

func closestSkill(skills []types.ResumeSkill, name string) (types.ResumeSkill, float64) {
	var best types.ResumeSkill
	bestSim := 0.0
	for _, s := range skills {
		if sim := scoring.Similarity(s.Name, name); sim > bestSim {
			best, bestSim = s, sim
		}
	}
	return best, bestSim
}

var seniorityMarkers = []string{"senior", "staff", "lead", "principal", "manager", "head", "director"}

// transitionFloor separates same-field moves from career changes. Two-word
// titles sharing one word score 1/3 on Jaccard, which should still count as
// the same field.
const transitionFloor = 0.3

// classifyTransition uses role-title similarity: dissimilar titles are a
// career change; similar titles are upward when the target adds a seniority
// marker the current title lacks, lateral otherwise.
func classifyTransition(currentRole, targetRole string) types.TransitionType {
	if scoring.Similarity(currentRole, targetRole) < transitionFloor {
		return types.TransitionCareerChange
	}
	current := strings.ToLower(currentRole)
	target := strings.ToLower(targetRole)
	for _, marker := range seniorityMarkers {
		if strings.Contains(target, marker) && !strings.Contains(current, marker) {
			return types.TransitionUpward
		}
	}
	return types.TransitionLateral
}

// UpdateProgress clamps and persists a new completion percentage.
func (a *Analyzer) UpdateProgress(ctx context.Context, id uuid.UUID, progress float64) (*roadmap.Report, error) {
	analysis, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if analysis == nil {
		return nil, &NotFoundError{Resource: "analysis", ID: id.String()}
	}

	now := a.now().UTC()
	roadmap.ApplyProgress(analysis, progress, now)
	if err := a.store.UpdateProgress(ctx, id, analysis.CompletionProgress, now); err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	report := roadmap.ProgressReport(analysis)
	return &report, nil
}

// Trajectory computes the progress trend across a user's stored analyses for
// one target role. Returns nil with no error when history is too short.
func (a *Analyzer) Trajectory(ctx context.Context, userID, targetRole string) (*roadmap.Trajectory, error) {
	history, err := a.store.ListByUserAndRole(ctx, userID, targetRole)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis history: %w", err)
	}
	return roadmap.ComputeTrajectory(history), nil
}

// Get loads one stored analysis.
func (a *Analyzer) Get(ctx context.Context, id uuid.UUID) (*types.SkillGapAnalysis, error) {
	analysis, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if analysis == nil {
		return nil, &NotFoundError{Resource: "analysis", ID: id.String()}
	}
	return analysis, nil
}
