package affiliate

import "fmt"

// Target thresholds for the revenue-validation report. Fixed design
// constants, not configuration.
const (
	targetConversionRate = 0.05
	targetClickThrough   = 0.20
	criticalFraction     = 0.25 // below a quarter of target is critical
)

// TargetStatus classifies one metric against its target.
type TargetStatus string

const (
	StatusExceeds  TargetStatus = "exceeds"
	StatusMeets    TargetStatus = "meets"
	StatusBelow    TargetStatus = "below"
	StatusCritical TargetStatus = "critical"
)

// TargetCheck is the verdict for one metric.
type TargetCheck struct {
	Metric         string       `json:"metric"`
	Actual         float64      `json:"actual"`
	Target         float64      `json:"target"`
	Status         TargetStatus `json:"status"`
	Recommendation string       `json:"recommendation,omitempty"`
}

// ValidateTargets classifies each affiliate metric against its fixed target
// and emits textual recommendations. This is a reporting function, not a
// control loop: nothing downstream changes behavior based on it.
func ValidateTargets(m Metrics) []TargetCheck {
	return []TargetCheck{
		checkMetric("conversion_rate", m.ConversionRate, targetConversionRate),
		checkMetric("clickthrough_rate", m.ClickThrough, targetClickThrough),
	}
}

func checkMetric(name string, actual, target float64) TargetCheck {
	check := TargetCheck{Metric: name, Actual: actual, Target: target}

	switch {
	case actual >= target*1.2:
		check.Status = StatusExceeds
	case actual >= target:
		check.Status = StatusMeets
	case actual >= target*criticalFraction:
		check.Status = StatusBelow
		check.Recommendation = fmt.Sprintf("%s is %.1f%% of target; review course relevance and placement", name, actual/target*100)
	default:
		check.Status = StatusCritical
		check.Recommendation = fmt.Sprintf("%s is critically low (%.3f vs target %.3f); audit tracking integration and course quality", name, actual, target)
	}
	return check
}
