// Package store provides persistence for skill gap analyses. The core only
// needs point lookups by fingerprint, append, and patch semantics; the query
// mechanics behind them belong to the storage collaborator.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// ErrNotFound is returned by patch operations targeting a missing record.
// Lookups signal absence with (nil, nil) instead.
var ErrNotFound = errors.New("analysis not found")

// AnalysisStore is the storage contract the analysis pipeline depends on.
// Lookups return (nil, nil) when no record exists.
type AnalysisStore interface {
	// Get retrieves an analysis by ID.
	Get(ctx context.Context, id uuid.UUID) (*types.SkillGapAnalysis, error)
	// Insert appends a new analysis record.
	Insert(ctx context.Context, analysis *types.SkillGapAnalysis) error
	// FindByFingerprint returns the canonical record for (resumeID, targetRole),
	// the newest one when history exists.
	FindByFingerprint(ctx context.Context, resumeID, targetRole string) (*types.SkillGapAnalysis, error)
	// ListByUserAndRole returns summaries of all analyses for (userID, targetRole),
	// ordered by CreatedAt ascending.
	ListByUserAndRole(ctx context.Context, userID, targetRole string) ([]types.HistoricalAnalysisSummary, error)
	// UpdateProgress patches completion progress, stamping the progress-update
	// time and UpdatedAt.
	UpdateProgress(ctx context.Context, id uuid.UUID, progress float64, at time.Time) error
	// IncrementClicks adds one affiliate click and bumps UpdatedAt.
	IncrementClicks(ctx context.Context, id uuid.UUID, at time.Time) error
	// IncrementConversions adds one conversion, accumulates revenue, and bumps
	// UpdatedAt.
	IncrementConversions(ctx context.Context, id uuid.UUID, revenue float64, at time.Time) error
}
