package occupation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Occupation is one entry in the occupational taxonomy.
type Occupation struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Provider is the occupational-taxonomy collaborator: role search plus the
// skill requirements for a specific occupation code.
type Provider interface {
	// SearchOccupations finds occupations matching a free-text role query.
	SearchOccupations(ctx context.Context, query string) ([]Occupation, error)

	// GetOccupationSkills returns the skill requirements for one occupation.
	GetOccupationSkills(ctx context.Context, code string) ([]types.TargetSkill, error)

	// DataVersion identifies the taxonomy release behind the answers, carried
	// into analysis metadata so stored results can be traced to their source.
	DataVersion() string
}

// HTTPProvider talks to the taxonomy HTTP API.
type HTTPProvider struct {
	baseURL string
	version string
	http    *http.Client
}

// NewHTTPProvider creates a taxonomy client. version tags the upstream data
// release and becomes part of every cache key.
func NewHTTPProvider(baseURL, version string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		version: version,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) DataVersion() string {
	return p.version
}

// SearchOccupations finds occupations matching a free-text role query.
func (p *HTTPProvider) SearchOccupations(ctx context.Context, query string) ([]Occupation, error) {
	endpoint := fmt.Sprintf("%s/occupations/search?q=%s", p.baseURL, url.QueryEscape(query))

	var occupations []Occupation
	if err := p.getJSON(ctx, endpoint, &occupations); err != nil {
		return nil, fmt.Errorf("failed to search occupations: %w", err)
	}
	return occupations, nil
}

// GetOccupationSkills returns the skill requirements for one occupation.
func (p *HTTPProvider) GetOccupationSkills(ctx context.Context, code string) ([]types.TargetSkill, error) {
	endpoint := fmt.Sprintf("%s/occupations/%s/skills", p.baseURL, url.PathEscape(code))

	var skills []types.TargetSkill
	if err := p.getJSON(ctx, endpoint, &skills); err != nil {
		return nil, fmt.Errorf("failed to get occupation skills for %s: %w", code, err)
	}
	return skills, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CachedProvider wraps a Provider with the tiered cache. Lookups include the
// data version in the key, so bumping the version on the inner provider is a
// full invalidation.
type CachedProvider struct {
	inner Provider
	cache *tieredCache
}

// NewCachedProvider wraps inner with L1 + optional Redis L2 caching.
// redisURL can be empty for L1-only operation.
func NewCachedProvider(inner Provider, redisURL string, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		inner: inner,
		cache: newTieredCache(redisURL, ttl),
	}
}

func (p *CachedProvider) DataVersion() string {
	return p.inner.DataVersion()
}

func (p *CachedProvider) SearchOccupations(ctx context.Context, query string) ([]Occupation, error) {
	key := cacheKey("search", p.inner.DataVersion(), query)

	var cached []Occupation
	if p.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	occupations, err := p.inner.SearchOccupations(ctx, query)
	if err != nil {
		return nil, err
	}
	p.cache.set(ctx, key, occupations)
	return occupations, nil
}

func (p *CachedProvider) GetOccupationSkills(ctx context.Context, code string) ([]types.TargetSkill, error) {
	key := cacheKey("skills", p.inner.DataVersion(), code)

	var cached []types.TargetSkill
	if p.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	skills, err := p.inner.GetOccupationSkills(ctx, code)
	if err != nil {
		return nil, err
	}
	p.cache.set(ctx, key, skills)
	return skills, nil
}

// Refresh drops the local tier so subsequent lookups hit the provider again.
// The serve command calls this on its periodic sweep.
func (p *CachedProvider) Refresh() {
	p.cache.purge()
}
