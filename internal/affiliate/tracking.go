package affiliate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillgap-analyzer/internal/store"
)

// Tracker records click and conversion events against the owning analysis.
type Tracker struct {
	store store.AnalysisStore
	now   func() time.Time
}

// NewTracker creates a tracker. The clock is injectable for tests; nil uses
// time.Now.
func NewTracker(s store.AnalysisStore, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: s, now: now}
}

// RecordClick increments the analysis click counter by exactly one and bumps
// its update timestamp.
func (t *Tracker) RecordClick(ctx context.Context, analysisID uuid.UUID) error {
	if err := t.store.IncrementClicks(ctx, analysisID, t.now().UTC()); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

// RecordConversion increments the conversion counter by exactly one and
// accumulates the attributed revenue.
func (t *Tracker) RecordConversion(ctx context.Context, analysisID uuid.UUID, revenue float64) error {
	if revenue < 0 {
		return fmt.Errorf("revenue must be non-negative, got %.2f", revenue)
	}
	if err := t.store.IncrementConversions(ctx, analysisID, revenue, t.now().UTC()); err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}
	return nil
}

// Metrics are the derived affiliate performance numbers.
type Metrics struct {
	Clicks         int     `json:"clicks"`
	Conversions    int     `json:"conversions"`
	Revenue        float64 `json:"revenue"`
	AnalysesShown  int     `json:"analyses_shown"`
	ConversionRate float64 `json:"conversion_rate"`   // conversions / clicks, 0 when no clicks
	ClickThrough   float64 `json:"clickthrough_rate"` // clicks / analyses shown, 0 when none shown
}

// ComputeMetrics derives rates from raw counters, guarding both divisions.
func ComputeMetrics(clicks, conversions, analysesShown int, revenue float64) Metrics {
	m := Metrics{
		Clicks:        clicks,
		Conversions:   conversions,
		Revenue:       revenue,
		AnalysesShown: analysesShown,
	}
	if clicks > 0 {
		m.ConversionRate = float64(conversions) / float64(clicks)
	}
	if analysesShown > 0 {
		m.ClickThrough = float64(clicks) / float64(analysesShown)
	}
	return m
}
