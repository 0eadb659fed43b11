package affiliate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTargets_HealthyMetrics(t *testing.T) {
	checks := ValidateTargets(Metrics{ConversionRate: 0.07, ClickThrough: 0.21})
	require.Len(t, checks, 2)

	assert.Equal(t, "conversion_rate", checks[0].Metric)
	assert.Equal(t, StatusExceeds, checks[0].Status)
	assert.Empty(t, checks[0].Recommendation)

	assert.Equal(t, "clickthrough_rate", checks[1].Metric)
	assert.Equal(t, StatusMeets, checks[1].Status)
}

func TestValidateTargets_BelowTargetGetsRecommendation(t *testing.T) {
	checks := ValidateTargets(Metrics{ConversionRate: 0.02, ClickThrough: 0.08})

	assert.Equal(t, StatusBelow, checks[0].Status)
	assert.NotEmpty(t, checks[0].Recommendation)
	assert.Equal(t, StatusBelow, checks[1].Status)
}

func TestValidateTargets_CriticalWhenFarBelow(t *testing.T) {
	checks := ValidateTargets(Metrics{ConversionRate: 0.005, ClickThrough: 0.01})

	for _, check := range checks {
		assert.Equal(t, StatusCritical, check.Status)
		assert.NotEmpty(t, check.Recommendation)
	}
}

func TestValidateTargets_ExactTargetMeets(t *testing.T) {
	checks := ValidateTargets(Metrics{ConversionRate: 0.05, ClickThrough: 0.20})

	assert.Equal(t, StatusMeets, checks[0].Status)
	assert.Equal(t, StatusMeets, checks[1].Status)
}
