// Package affiliate ranks external course candidates per skill gap and tracks
// the click and conversion events that feed revenue-target validation.
package affiliate

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/skillgap-analyzer/internal/types"
)

// SortKey selects the course ranking order.
type SortKey string

const (
	SortRatingDesc   SortKey = "rating_desc"
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortDurationAsc  SortKey = "duration_asc"
	SortDurationDesc SortKey = "duration_desc"
)

// DefaultTopN limits recommendations per skill when no limit is given.
const DefaultTopN = 3

// RankCourses sorts candidates by the given key and returns the top n.
// An unknown key is a validation error, never silently reinterpreted.
func RankCourses(courses []types.Course, key SortKey, n int) ([]types.Course, error) {
	less, err := comparator(key)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := append([]types.Course(nil), courses...)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func comparator(key SortKey) (func(a, b types.Course) bool, error) {
	switch key {
	case SortRatingDesc, "":
		return func(a, b types.Course) bool { return a.Rating > b.Rating }, nil
	case SortPriceAsc:
		return func(a, b types.Course) bool { return a.Price < b.Price }, nil
	case SortPriceDesc:
		return func(a, b types.Course) bool { return a.Price > b.Price }, nil
	case SortDurationAsc:
		return func(a, b types.Course) bool { return a.EstimatedHours < b.EstimatedHours }, nil
	case SortDurationDesc:
		return func(a, b types.Course) bool { return a.EstimatedHours > b.EstimatedHours }, nil
	default:
		return nil, fmt.Errorf("invalid sort key: %q", key)
	}
}

// trackingNamespace scopes deterministic tracking IDs to this application.
var trackingNamespace = uuid.MustParse("7f1e7c60-9f3b-45d2-8a4e-2d1b6f0c9a11")

// TrackingID derives the stable per-(user, analysis, skill) identifier that
// tags an affiliate link. The same triple always yields the same ID.
func TrackingID(userID string, analysisID uuid.UUID, skill string) uuid.UUID {
	return uuid.NewSHA1(trackingNamespace, []byte(userID+"|"+analysisID.String()+"|"+skill))
}
