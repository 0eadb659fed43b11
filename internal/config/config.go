// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/skillgap-analyzer/internal/llm"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to environment variables
// and then defaults.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty runs in-memory
	RedisURL    string `json:"redis_url,omitempty"`    // Optional L2 cache for occupation lookups

	// AI backend
	Provider     string `json:"provider,omitempty"` // "gemini" (default) or "openai"
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	OpenAIAPIKey string `json:"openai_api_key,omitempty"`

	// External collaborators
	TaxonomyURL     string `json:"taxonomy_url,omitempty"`     // Occupation data provider base URL
	TaxonomyVersion string `json:"taxonomy_version,omitempty"` // Data release tag, part of cache keys
	CatalogURL      string `json:"catalog_url,omitempty"`      // Course catalog base URL

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port for serve
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a config from environment variables alone. Callers load
// .env first (godotenv) so local development works without exported vars.
func FromEnv() *Config {
	cfg := &Config{
		DatabaseURL:     os.Getenv("SKILLGAP_DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		Provider:        os.Getenv("SKILLGAP_PROVIDER"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		TaxonomyURL:     os.Getenv("SKILLGAP_TAXONOMY_URL"),
		TaxonomyVersion: os.Getenv("SKILLGAP_TAXONOMY_VERSION"),
		CatalogURL:      os.Getenv("SKILLGAP_CATALOG_URL"),
	}
	return cfg
}

// MergeWithEnv fills empty fields from the environment, so file values win
// over environment values.
func (c *Config) MergeWithEnv() *Config {
	env := FromEnv()
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = env.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = env.RedisURL
	}
	if result.Provider == "" {
		result.Provider = env.Provider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = env.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = env.OpenAIAPIKey
	}
	if result.TaxonomyURL == "" {
		result.TaxonomyURL = env.TaxonomyURL
	}
	if result.TaxonomyVersion == "" {
		result.TaxonomyVersion = env.TaxonomyVersion
	}
	if result.CatalogURL == "" {
		result.CatalogURL = env.CatalogURL
	}
	return &result
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", string(llm.ProviderGemini), string(llm.ProviderOpenAI):
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.Provider == string(llm.ProviderOpenAI) && c.OpenAIAPIKey == "" {
		return fmt.Errorf("config error: provider openai requires 'openai_api_key'")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	if c.TaxonomyURL != "" && c.TaxonomyVersion == "" {
		return fmt.Errorf("config error: 'taxonomy_version' is required when 'taxonomy_url' is set")
	}

	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider == string(llm.ProviderOpenAI) {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}
