package analysiscache

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/skillgap-analyzer/internal/store"
	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Resolution is the outcome of a cache lookup: either a reusable stored
// record, or an instruction to compute fresh.
type Resolution struct {
	Reuse   *types.SkillGapAnalysis
	Compute bool
}

// Gate owns the reuse-or-recompute decision for analyses.
type Gate struct {
	store store.AnalysisStore
	group singleflight.Group
}

// NewGate creates a gate over the given store.
func NewGate(s store.AnalysisStore) *Gate {
	return &Gate{store: s}
}

// Resolve checks whether a stored analysis for (resumeID, targetRole) carries
// the current content hash. A prior record is reusable if and only if its
// stored hash equals the current one; any mismatch, including the very first
// request for a resume, requires fresh computation.
func (g *Gate) Resolve(ctx context.Context, resumeID, targetRole, contentHash string) (Resolution, error) {
	prior, err := g.store.FindByFingerprint(ctx, resumeID, targetRole)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to resolve analysis cache: %w", err)
	}
	if prior != nil && prior.ContentHash == contentHash {
		slog.Debug("analysis cache hit",
			slog.String("resume_id", resumeID),
			slog.String("target_role", targetRole))
		return Resolution{Reuse: prior}, nil
	}

	slog.Debug("analysis cache miss",
		slog.String("resume_id", resumeID),
		slog.String("target_role", targetRole),
		slog.Bool("stale_prior", prior != nil))
	return Resolution{Compute: true}, nil
}

// ResolveOrCompute returns the cached record when the hash matches, otherwise
// runs computeFn and persists its result. Concurrent misses for the same
// (resumeID, targetRole, contentHash) fingerprint are collapsed into a single
// computation, so at most one canonical record exists per fingerprint even
// without caller-side serialization.
func (g *Gate) ResolveOrCompute(
	ctx context.Context,
	resumeID, targetRole, contentHash string,
	computeFn func(ctx context.Context) (*types.SkillGapAnalysis, error),
) (*types.SkillGapAnalysis, bool, error) {
	res, err := g.Resolve(ctx, resumeID, targetRole, contentHash)
	if err != nil {
		return nil, false, err
	}
	if res.Reuse != nil {
		return res.Reuse, true, nil
	}

	key := FingerprintKey(resumeID, targetRole, contentHash)
	v, err, _ := g.group.Do(key, func() (any, error) {
		// Re-check inside the flight: a concurrent caller may have just
		// inserted the record for this fingerprint.
		again, err := g.Resolve(ctx, resumeID, targetRole, contentHash)
		if err != nil {
			return nil, err
		}
		if again.Reuse != nil {
			return again.Reuse, nil
		}

		analysis, err := computeFn(ctx)
		if err != nil {
			return nil, err
		}
		if analysis.ContentHash != contentHash {
			return nil, fmt.Errorf("computed analysis carries hash %q, expected %q", analysis.ContentHash, contentHash)
		}
		if err := g.store.Insert(ctx, analysis); err != nil {
			return nil, fmt.Errorf("failed to persist analysis: %w", err)
		}
		return analysis, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*types.SkillGapAnalysis), false, nil
}
