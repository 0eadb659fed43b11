// Package types provides type definitions for structured data used throughout the skill gap analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// TransitionType classifies the move from the current role to the target role.
type TransitionType string

const (
	TransitionLateral      TransitionType = "lateral"
	TransitionUpward       TransitionType = "upward"
	TransitionCareerChange TransitionType = "career-change"
)

// SkillGap represents a single skill the target role requires at a level the
// user does not yet meet.
type SkillGap struct {
	Name              string  `json:"name"`
	Code              string  `json:"code,omitempty"` // standardized occupation-taxonomy skill code
	Importance        float64 `json:"importance"`     // 0-100
	CurrentLevel      float64 `json:"current_level"`  // 0-100
	TargetLevel       float64 `json:"target_level"`   // 0-100
	PriorityScore     float64 `json:"priority_score"` // derived, never hand-set
	TimeEstimateHours float64 `json:"time_estimate_hours"`
	MarketDemand      float64 `json:"market_demand,omitempty"` // 0-100
}

// TransferableSkill represents a skill the user already has that carries over
// to the target role.
type TransferableSkill struct {
	Name          string  `json:"name"`
	CurrentLevel  float64 `json:"current_level"` // 0-100
	Applicability float64 `json:"applicability"` // 0-100
	Rationale     string  `json:"rationale"`
	Confidence    float64 `json:"confidence"` // 0-1
}

// RoadmapPhase is one ordered phase of the learning roadmap.
type RoadmapPhase struct {
	Phase         int      `json:"phase"`
	Skills        []string `json:"skills"`
	DurationWeeks int      `json:"duration_weeks"`
	Milestone     string   `json:"milestone"`
}

// AnalysisMetadata carries bookkeeping attached to an analysis. All numeric
// fields default to zero at construction so increment sites never need a
// nil/absent check.
type AnalysisMetadata struct {
	DataSourceVersion    string     `json:"data_source_version,omitempty"`
	ModelID              string     `json:"model_id,omitempty"`
	AffiliateClicks      int        `json:"affiliate_clicks"`
	AffiliateConversions int        `json:"affiliate_conversions"`
	Revenue              float64    `json:"revenue"`
	LastProgressUpdate   *time.Time `json:"last_progress_update,omitempty"`
}

// SkillGapAnalysis is the central record: one analysis of a resume against a
// target role, keyed by the resume's content hash.
type SkillGapAnalysis struct {
	ID                   uuid.UUID           `json:"id"`
	UserID               string              `json:"user_id"`
	ResumeID             string              `json:"resume_id"`
	TargetRole           string              `json:"target_role"`
	TargetOccupationCode string              `json:"target_occupation_code,omitempty"` // O*NET code
	CriticalGaps         []SkillGap          `json:"critical_gaps"`
	NiceToHaveGaps       []SkillGap          `json:"nice_to_have_gaps"`
	TransferableSkills   []TransferableSkill `json:"transferable_skills"`
	PrioritizedRoadmap   []RoadmapPhase      `json:"prioritized_roadmap"`
	UserAvailability     float64             `json:"user_availability"` // hours per week
	TransitionType       TransitionType      `json:"transition_type"`
	CompletionProgress   float64             `json:"completion_progress"` // 0-100
	ContentHash          string              `json:"content_hash"`
	AnalysisVersion      string              `json:"analysis_version"`
	Metadata             AnalysisMetadata    `json:"metadata"`
	CreatedAt            time.Time           `json:"created_at"` // immutable, set once
	UpdatedAt            time.Time           `json:"updated_at"` // bumped on every patch
}

// NewSkillGapAnalysis constructs an analysis record with identifiers, zeroed
// metadata counters, and both timestamps set to now.
func NewSkillGapAnalysis(userID, resumeID, targetRole, contentHash string) *SkillGapAnalysis {
	now := time.Now().UTC()
	return &SkillGapAnalysis{
		ID:              uuid.New(),
		UserID:          userID,
		ResumeID:        resumeID,
		TargetRole:      targetRole,
		ContentHash:     contentHash,
		AnalysisVersion: AnalysisVersion,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AnalysisVersion identifies the scoring/roadmap algorithm generation that
// produced a record. Bump when the formulas change.
const AnalysisVersion = "2.1"

// TotalGaps returns the combined count of critical and nice-to-have gaps.
func (a *SkillGapAnalysis) TotalGaps() int {
	return len(a.CriticalGaps) + len(a.NiceToHaveGaps)
}

// HistoricalAnalysisSummary is a read-projection of a prior analysis for the
// same user/target-role, used by trajectory computation. It carries counts
// rather than full gap lists.
type HistoricalAnalysisSummary struct {
	ID                 uuid.UUID `json:"id"`
	CriticalGapCount   int       `json:"critical_gap_count"`
	NiceToHaveGapCount int       `json:"nice_to_have_gap_count"`
	TransferableCount  int       `json:"transferable_count"`
	CompletionProgress float64   `json:"completion_progress"`
	CreatedAt          time.Time `json:"created_at"`
}

// Summary projects the analysis into its historical summary form.
func (a *SkillGapAnalysis) Summary() HistoricalAnalysisSummary {
	return HistoricalAnalysisSummary{
		ID:                 a.ID,
		CriticalGapCount:   len(a.CriticalGaps),
		NiceToHaveGapCount: len(a.NiceToHaveGaps),
		TransferableCount:  len(a.TransferableSkills),
		CompletionProgress: a.CompletionProgress,
		CreatedAt:          a.CreatedAt,
	}
}
