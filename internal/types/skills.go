// Package types provides type definitions for structured data used throughout the skill gap analyzer.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeSkill is a skill extracted from a resume, with a self-reported or
// parsed proficiency level.
type ResumeSkill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"` // beginner, intermediate, advanced, expert
}

// TargetSkill is a skill the target occupation requires, as reported by the
// occupation data provider.
type TargetSkill struct {
	Name           string  `json:"name"`
	Code           string  `json:"code,omitempty"`
	Importance     float64 `json:"importance"`   // 0-100
	RequiredLevel  float64 `json:"target_level"` // 0-100
	MarketDemand   float64 `json:"market_demand,omitempty"`
	HoursToAcquire float64 `json:"hours_to_acquire,omitempty"`
}

// Course is one affiliate course candidate from the external catalog.
type Course struct {
	Title          string   `json:"title"`
	Provider       string   `json:"provider"`
	URL            string   `json:"url"`
	Price          float64  `json:"price"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"review_count"`
	EstimatedHours float64  `json:"estimated_hours"`
	Level          string   `json:"level,omitempty"`
	Topics         []string `json:"topics,omitempty"`
}
