package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/analyses", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiter_BurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/analyses", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/analyses", "POST")
	require.True(t, allowed)

	allowed, info := l.Allow("10.0.0.1", "/analyses", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 60, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("10.0.0.1", "/analyses", "POST")
	l.Allow("10.0.0.1", "/analyses", "POST")

	allowed, _ := l.Allow("10.0.0.2", "/analyses", "POST")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBypassesLimits(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.9"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for range 10 {
		allowed, _ := l.Allow("10.0.0.9", "/analyses", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_BlacklistRejectsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["10.0.0.66"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.66", "/health", "POST")
	assert.False(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for range 5 {
		allowed, _ := l.Allow("10.0.0.1", "/analyses", "POST")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint_HealthIsUnlimited(t *testing.T) {
	ec := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, ec)
	assert.Equal(t, 0, ec.Limit)
}

func TestMatchEndpoint_PrefixMatch(t *testing.T) {
	configs := DefaultEndpointConfigs()

	ec := MatchEndpoint("/analyses/123/progress", "PATCH", configs)
	require.NotNil(t, ec)
	assert.Equal(t, "/analyses/", ec.Path)

	assert.Nil(t, MatchEndpoint("/occupations", "GET", configs))
}
