package affiliate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// Catalog is the read-only course catalog collaborator.
type Catalog interface {
	// CoursesForSkill lists candidate courses for one skill query.
	CoursesForSkill(ctx context.Context, skill string) ([]types.Course, error)
}

// CatalogError carries the upstream status so the retry predicate can
// distinguish transient failures from permanent ones.
type CatalogError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is worth a second attempt: timeouts
// and 5xx are, client errors are not.
func (e *CatalogError) Retryable() bool {
	if e.StatusCode == 0 {
		return true // transport-level failure or timeout
	}
	return e.StatusCode >= 500
}

// HTTPCatalog talks to the affiliate course-catalog HTTP API.
type HTTPCatalog struct {
	baseURL string
	http    *http.Client
}

// NewHTTPCatalog creates a catalog client with a bounded request timeout.
func NewHTTPCatalog(baseURL string) *HTTPCatalog {
	return &HTTPCatalog{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CoursesForSkill lists candidate courses for one skill query.
func (c *HTTPCatalog) CoursesForSkill(ctx context.Context, skill string) ([]types.Course, error) {
	endpoint := fmt.Sprintf("%s/courses?skill=%s", c.baseURL, url.QueryEscape(skill))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &CatalogError{Message: "failed to build request", Cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &CatalogError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &CatalogError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var courses []types.Course
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		return nil, &CatalogError{StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return courses, nil
}

// Recommendations is the outcome of a catalog fetch. Degraded carries the
// user-facing warning when the catalog could not be reached: the analysis
// still succeeds with an empty course list.
type Recommendations struct {
	Skill    string         `json:"skill"`
	Courses  []types.Course `json:"courses"`
	Degraded bool           `json:"degraded,omitempty"`
	Warning  string         `json:"warning,omitempty"`
}

// FetchRecommendations fetches and ranks courses for one skill with bounded
// retry: two attempts, exponential backoff, and a retryability predicate that
// lets validation failures through immediately. A catalog that stays down
// degrades to an empty course list rather than failing the analysis.
func FetchRecommendations(ctx context.Context, catalog Catalog, skill string, key SortKey, topN int) Recommendations {
	operation := func() ([]types.Course, error) {
		courses, err := catalog.CoursesForSkill(ctx, skill)
		if err != nil {
			var catErr *CatalogError
			if errors.As(err, &catErr) && !catErr.Retryable() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return courses, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond

	courses, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(2))
	if err != nil {
		slog.Warn("course recommendations unavailable",
			slog.String("skill", skill), slog.Any("error", err))
		return Recommendations{
			Skill:    skill,
			Courses:  []types.Course{},
			Degraded: true,
			Warning:  "Course recommendations are temporarily unavailable.",
		}
	}

	ranked, err := RankCourses(courses, key, topN)
	if err != nil {
		// An invalid sort key is a caller bug, not an upstream failure;
		// fall back to the default ordering instead of degrading.
		ranked, _ = RankCourses(courses, SortRatingDesc, topN)
	}
	return Recommendations{Skill: skill, Courses: ranked}
}
