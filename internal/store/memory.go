package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Memory is an in-process AnalysisStore used by tests and one-shot CLI runs.
type Memory struct {
	mu       sync.RWMutex
	analyses map[uuid.UUID]*types.SkillGapAnalysis
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{analyses: make(map[uuid.UUID]*types.SkillGapAnalysis)}
}

// Get retrieves an analysis by ID. Returns (nil, nil) when absent.
func (m *Memory) Get(_ context.Context, id uuid.UUID) (*types.SkillGapAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.analyses[id]
	if !ok {
		return nil, nil
	}
	return cloneAnalysis(a), nil
}

// Insert appends a new analysis record.
func (m *Memory) Insert(_ context.Context, a *types.SkillGapAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.analyses[a.ID]; exists {
		return fmt.Errorf("analysis already exists: %s", a.ID)
	}
	m.analyses[a.ID] = cloneAnalysis(a)
	return nil
}

// FindByFingerprint returns the newest record for (resumeID, targetRole).
func (m *Memory) FindByFingerprint(_ context.Context, resumeID, targetRole string) (*types.SkillGapAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var newest *types.SkillGapAnalysis
	for _, a := range m.analyses {
		if a.ResumeID != resumeID || a.TargetRole != targetRole {
			continue
		}
		if newest == nil || a.CreatedAt.After(newest.CreatedAt) {
			newest = a
		}
	}
	if newest == nil {
		return nil, nil
	}
	return cloneAnalysis(newest), nil
}

// ListByUserAndRole returns historical summaries ordered by creation time.
func (m *Memory) ListByUserAndRole(_ context.Context, userID, targetRole string) ([]types.HistoricalAnalysisSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var summaries []types.HistoricalAnalysisSummary
	for _, a := range m.analyses {
		if a.UserID == userID && a.TargetRole == targetRole {
			summaries = append(summaries, a.Summary())
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// UpdateProgress patches completion progress and stamps both timestamps.
func (m *Memory) UpdateProgress(_ context.Context, id uuid.UUID, progress float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.analyses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a.CompletionProgress = progress
	updateTime := at
	a.Metadata.LastProgressUpdate = &updateTime
	a.UpdatedAt = at
	return nil
}

// IncrementClicks adds exactly one affiliate click.
func (m *Memory) IncrementClicks(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.analyses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a.Metadata.AffiliateClicks++
	a.UpdatedAt = at
	return nil
}

// IncrementConversions adds exactly one conversion and accumulates revenue.
func (m *Memory) IncrementConversions(_ context.Context, id uuid.UUID, revenue float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.analyses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a.Metadata.AffiliateConversions++
	a.Metadata.Revenue += revenue
	a.UpdatedAt = at
	return nil
}

// cloneAnalysis deep-copies a record so callers cannot mutate stored state.
func cloneAnalysis(a *types.SkillGapAnalysis) *types.SkillGapAnalysis {
	data, err := json.Marshal(a)
	if err != nil {
		return a
	}
	var clone types.SkillGapAnalysis
	if err := json.Unmarshal(data, &clone); err != nil {
		return a
	}
	return &clone
}
