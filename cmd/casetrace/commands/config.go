package commands

import (
	"casetrace-backend/internal/batchdata"
	"casetrace-backend/internal/components/db"
	"casetrace-backend/internal/skiptrace"
	"casetrace-backend/lib/configutil"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const apiKeyEnv = "BATCHDATA_API_KEY"

type BatchdataConfig struct {
	Environment       string  `json:"environment"`
	SandboxApiKey     string  `json:"sandbox_api_key"`
	ProductionApiKey  string  `json:"production_api_key"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	MaxRetries        *int    `json:"max_retries"`
	BaseDelayMs       int     `json:"base_delay_ms"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

type SkiptraceConfig struct {
	MinPhoneScore float64 `json:"min_phone_score"`
}

type ScraperConfig struct {
	Headless           *bool `json:"headless"`
	WaitTimeoutSeconds int   `json:"wait_timeout_seconds"`
	// FallbackTown is the city used for addresses read from a case csv whose
	// city cannot be determined.
	FallbackTown      string   `json:"fallback_town"`
	PlaceholderTokens []string `json:"placeholder_tokens"`
}

type Config struct {
	Batchdata BatchdataConfig `json:"batchdata"`
	Skiptrace SkiptraceConfig `json:"skiptrace"`
	Scraper   ScraperConfig   `json:"scraper"`
	Database  db.Config       `json:"database"`
}

func (c *Config) applyDefaults() {
	if c.Batchdata.Environment == "" {
		c.Batchdata.Environment = string(batchdata.ENV_SANDBOX)
	}
	if c.Batchdata.TimeoutSeconds <= 0 {
		c.Batchdata.TimeoutSeconds = 30
	}
	if c.Batchdata.MaxRetries == nil {
		retries := 3
		c.Batchdata.MaxRetries = &retries
	}
	if c.Batchdata.BaseDelayMs <= 0 {
		c.Batchdata.BaseDelayMs = 1000
	}
	if c.Skiptrace.MinPhoneScore <= 0 {
		c.Skiptrace.MinPhoneScore = skiptrace.DefaultMinPhoneScore
	}
	if c.Scraper.Headless == nil {
		headless := true
		c.Scraper.Headless = &headless
	}
	if c.Scraper.WaitTimeoutSeconds <= 0 {
		c.Scraper.WaitTimeoutSeconds = 10
	}
	if c.Scraper.FallbackTown == "" {
		c.Scraper.FallbackTown = "Middletown"
	}
	if c.Database.File == "" {
		c.Database.File = "casetrace.db"
	}
}

// LoadConfig reads the config file (and its .local override), a missing file
// is not an error and leaves every setting at its default.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ApiKey picks the api key, the flag wins over the config which wins over
// the environment variable.
func (c BatchdataConfig) ApiKey(flag string) string {
	if flag != "" {
		return flag
	}
	key := c.SandboxApiKey
	if batchdata.Environment(c.Environment) == batchdata.ENV_PRODUCTION {
		key = c.ProductionApiKey
	}
	if key != "" {
		return key
	}
	return os.Getenv(apiKeyEnv)
}

func (c BatchdataConfig) Options(apiKeyFlag string) batchdata.Options {
	return batchdata.Options{
		Environment:       batchdata.Environment(c.Environment),
		ApiKey:            c.ApiKey(apiKeyFlag),
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRetries:        *c.MaxRetries,
		BaseDelay:         time.Duration(c.BaseDelayMs) * time.Millisecond,
		RequestsPerSecond: c.RequestsPerSecond,
	}
}
