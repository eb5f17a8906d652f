package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"casetrace-backend/internal/batchdata"
	"casetrace-backend/internal/components/db"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)

	require.Equal(t, "sandbox", cfg.Batchdata.Environment)
	require.Equal(t, 3, *cfg.Batchdata.MaxRetries)
	require.True(t, *cfg.Scraper.Headless)
	require.Equal(t, "Middletown", cfg.Scraper.FallbackTown)
	require.Equal(t, db.Config{File: "casetrace.db"}, cfg.Database)

	options := cfg.Batchdata.Options("flag-key")
	require.Equal(t, batchdata.Options{
		Environment: batchdata.ENV_SANDBOX,
		ApiKey:      "flag-key",
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		BaseDelay:   time.Second,
	}, options)
}

func TestLoadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.json5", `{
		// comments are allowed
		batchdata: {
			environment: "production",
			sandbox_api_key: "sandbox-key",
			production_api_key: "prod-key",
			max_retries: 5,
		},
		scraper: { headless: false, fallback_town: "Hartford" },
	}`)
	writeConfig(t, dir, "config.local.json5", `{
		batchdata: { max_retries: 1 },
		scraper: { wait_timeout_seconds: 30 },
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1, *cfg.Batchdata.MaxRetries)
	require.False(t, *cfg.Scraper.Headless)
	require.Equal(t, 30, cfg.Scraper.WaitTimeoutSeconds)
	require.Equal(t, "Hartford", cfg.Scraper.FallbackTown)
	require.Equal(t, "prod-key", cfg.Batchdata.ApiKey(""))
}

func TestApiKeyFallbacks(t *testing.T) {
	t.Setenv(apiKeyEnv, "env-key")

	config := BatchdataConfig{Environment: "sandbox"}
	require.Equal(t, "env-key", config.ApiKey(""))

	config.SandboxApiKey = "sandbox-key"
	require.Equal(t, "sandbox-key", config.ApiKey(""))
	require.Equal(t, "flag-key", config.ApiKey("flag-key"))

	config.Environment = "production"
	require.Equal(t, "env-key", config.ApiKey(""))
}
