package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"database_url": "postgres://localhost/skillgap",
		"provider": "gemini",
		"taxonomy_url": "https://taxonomy.example.com",
		"taxonomy_version": "2026.1",
		"port": 8080
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/skillgap", cfg.DatabaseURL)
	assert.Equal(t, "2026.1", cfg.TaxonomyVersion)
	assert.Equal(t, 8080, cfg.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{Provider: "anthropic"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_OpenAIRequiresKey(t *testing.T) {
	cfg := &Config{Provider: "openai"}
	assert.Error(t, cfg.Validate())

	cfg.OpenAIAPIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_TaxonomyVersionRequiredWithURL(t *testing.T) {
	cfg := &Config{TaxonomyURL: "https://taxonomy.example.com"}
	assert.Error(t, cfg.Validate())

	cfg.TaxonomyVersion = "2026.1"
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithEnv_FileValuesWin(t *testing.T) {
	t.Setenv("SKILLGAP_DATABASE_URL", "postgres://env/skillgap")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := (&Config{DatabaseURL: "postgres://file/skillgap"}).MergeWithEnv()

	assert.Equal(t, "postgres://file/skillgap", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
}

func TestAPIKey_FollowsProvider(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "g-key", OpenAIAPIKey: "o-key"}

	assert.Equal(t, "g-key", cfg.APIKey())

	cfg.Provider = "openai"
	assert.Equal(t, "o-key", cfg.APIKey())
}
