package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Postgres implements AnalysisStore on a pgx connection pool. Gap lists,
// transferable skills, the roadmap, and metadata live in JSONB columns.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (s *Postgres) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const analysisColumns = `id, user_id, resume_id, target_role, target_occupation_code,
	critical_gaps, nice_to_have_gaps, transferable_skills, prioritized_roadmap,
	user_availability, transition_type, completion_progress, content_hash,
	analysis_version, metadata, created_at, updated_at`

// Get retrieves an analysis by ID. Returns (nil, nil) when absent.
func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (*types.SkillGapAnalysis, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM skill_gap_analyses WHERE id = $1`, id)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return analysis, nil
}

// Insert appends a new analysis record.
func (s *Postgres) Insert(ctx context.Context, a *types.SkillGapAnalysis) error {
	criticalGaps, niceToHave, transferable, roadmap, metadata, err := marshalAnalysisJSON(a)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO skill_gap_analyses (`+analysisColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		a.ID, a.UserID, a.ResumeID, a.TargetRole, a.TargetOccupationCode,
		criticalGaps, niceToHave, transferable, roadmap,
		a.UserAvailability, a.TransitionType, a.CompletionProgress, a.ContentHash,
		a.AnalysisVersion, metadata, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// FindByFingerprint returns the newest record for (resumeID, targetRole).
// Returns (nil, nil) when absent.
func (s *Postgres) FindByFingerprint(ctx context.Context, resumeID, targetRole string) (*types.SkillGapAnalysis, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM skill_gap_analyses
		 WHERE resume_id = $1 AND target_role = $2
		 ORDER BY created_at DESC LIMIT 1`,
		resumeID, targetRole)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return analysis, nil
}

// ListByUserAndRole returns historical summaries ordered by creation time.
func (s *Postgres) ListByUserAndRole(ctx context.Context, userID, targetRole string) ([]types.HistoricalAnalysisSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, jsonb_array_length(critical_gaps), jsonb_array_length(nice_to_have_gaps),
		        jsonb_array_length(transferable_skills), completion_progress, created_at
		 FROM skill_gap_analyses
		 WHERE user_id = $1 AND target_role = $2
		 ORDER BY created_at ASC`,
		userID, targetRole)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var summaries []types.HistoricalAnalysisSummary
	for rows.Next() {
		var summary types.HistoricalAnalysisSummary
		if err := rows.Scan(&summary.ID, &summary.CriticalGapCount, &summary.NiceToHaveGapCount,
			&summary.TransferableCount, &summary.CompletionProgress, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// UpdateProgress patches completion progress and stamps both timestamps.
func (s *Postgres) UpdateProgress(ctx context.Context, id uuid.UUID, progress float64, at time.Time) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE skill_gap_analyses
		 SET completion_progress = $1,
		     metadata = jsonb_set(metadata, '{last_progress_update}', to_jsonb($2::timestamptz)),
		     updated_at = $2
		 WHERE id = $3`,
		progress, at, id)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// IncrementClicks adds exactly one affiliate click.
func (s *Postgres) IncrementClicks(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE skill_gap_analyses
		 SET metadata = jsonb_set(metadata, '{affiliate_clicks}',
		         to_jsonb(COALESCE((metadata->>'affiliate_clicks')::int, 0) + 1)),
		     updated_at = $1
		 WHERE id = $2`,
		at, id)
	if err != nil {
		return fmt.Errorf("failed to increment clicks: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// IncrementConversions adds exactly one conversion and accumulates revenue.
func (s *Postgres) IncrementConversions(ctx context.Context, id uuid.UUID, revenue float64, at time.Time) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE skill_gap_analyses
		 SET metadata = jsonb_set(jsonb_set(metadata, '{affiliate_conversions}',
		         to_jsonb(COALESCE((metadata->>'affiliate_conversions')::int, 0) + 1)),
		         '{revenue}', to_jsonb(COALESCE((metadata->>'revenue')::numeric, 0) + $1::numeric)),
		     updated_at = $2
		 WHERE id = $3`,
		revenue, at, id)
	if err != nil {
		return fmt.Errorf("failed to increment conversions: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// scanAnalysis reads one analysis row, decoding the JSONB columns.
func scanAnalysis(row pgx.Row) (*types.SkillGapAnalysis, error) {
	var a types.SkillGapAnalysis
	var criticalGaps, niceToHave, transferable, roadmap, metadata []byte

	err := row.Scan(&a.ID, &a.UserID, &a.ResumeID, &a.TargetRole, &a.TargetOccupationCode,
		&criticalGaps, &niceToHave, &transferable, &roadmap,
		&a.UserAvailability, &a.TransitionType, &a.CompletionProgress, &a.ContentHash,
		&a.AnalysisVersion, &metadata, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for _, col := range []struct {
		data []byte
		dst  any
	}{
		{criticalGaps, &a.CriticalGaps},
		{niceToHave, &a.NiceToHaveGaps},
		{transferable, &a.TransferableSkills},
		{roadmap, &a.PrioritizedRoadmap},
		{metadata, &a.Metadata},
	} {
		if len(col.data) == 0 {
			continue
		}
		if err := json.Unmarshal(col.data, col.dst); err != nil {
			return nil, fmt.Errorf("failed to decode analysis column: %w", err)
		}
	}

	return &a, nil
}

// marshalAnalysisJSON encodes the JSONB columns of an analysis.
func marshalAnalysisJSON(a *types.SkillGapAnalysis) (criticalGaps, niceToHave, transferable, roadmap, metadata []byte, err error) {
	cols := []struct {
		src any
		dst *[]byte
	}{
		{a.CriticalGaps, &criticalGaps},
		{a.NiceToHaveGaps, &niceToHave},
		{a.TransferableSkills, &transferable},
		{a.PrioritizedRoadmap, &roadmap},
		{a.Metadata, &metadata},
	}
	for _, col := range cols {
		data, marshalErr := json.Marshal(col.src)
		if marshalErr != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("failed to marshal analysis: %w", marshalErr)
		}
		*col.dst = data
	}
	return criticalGaps, niceToHave, transferable, roadmap, metadata, nil
}
