// Package config defines process configuration and how it is loaded.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/nuclea/internal/llm"
)

const (
	PersistenceSQLite = "sqlite"
	PersistenceNone   = "none"
)

// Config contains process configuration. Keys are flat so that env vars
// map one to one (NUCLEA_LLM_MODEL -> llm_model).
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogMode selects the encoder: "dev" (console) or "prod" (JSON).
	LogMode string `koanf:"log_mode"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// CORSOrigins is a comma-separated list of allowed dashboard origins.
	CORSOrigins string `koanf:"cors_origins"`

	// DBPath is the SQLite file. Empty means ~/.nuclea/nuclea.db.
	DBPath string `koanf:"db_path"`
	// Persistence is "sqlite" or "none".
	Persistence string `koanf:"persistence"`

	// AnalyzeTimeoutSec bounds one whole analysis request.
	AnalyzeTimeoutSec int `koanf:"analyze_timeout_sec"`

	LLMProvider    string  `koanf:"llm_provider"`
	LLMEndpoint    string  `koanf:"llm_endpoint"`
	LLMModel       string  `koanf:"llm_model"`
	LLMAPIKey      string  `koanf:"llm_api_key"`
	LLMTimeoutMs   int     `koanf:"llm_timeout_ms"`
	LLMMaxRetries  int     `koanf:"llm_max_retries"`
	LLMTemperature float64 `koanf:"llm_temperature"`
	LLMMaxTokens   int     `koanf:"llm_max_tokens"`
	LLMLogCalls    bool    `koanf:"llm_log_calls"`
}

// New creates a Config with defaults. Context is accepted first to match
// the loader and is currently unused.
func New(_ context.Context) *Config {
	d := llm.DefaultConfig()
	return &Config{
		LogLevel:          "info",
		LogMode:           "dev",
		Addr:              ":8080",
		CORSOrigins:       "http://localhost:3000",
		Persistence:       PersistenceSQLite,
		AnalyzeTimeoutSec: 60,
		LLMProvider:       string(d.Provider),
		LLMTimeoutMs:      d.TimeoutMs,
		LLMMaxRetries:     d.MaxRetries,
		LLMTemperature:    d.Tasks[llm.TaskRubric].Temperature,
		LLMMaxTokens:      d.Tasks[llm.TaskRubric].MaxTokens,
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Persistence {
	case PersistenceSQLite, PersistenceNone:
	default:
		return fmt.Errorf("%w: persistence must be sqlite or none, got %q", ErrInvalidConfig, c.Persistence)
	}
	if c.AnalyzeTimeoutSec <= 0 {
		return fmt.Errorf("%w: analyze_timeout_sec must be positive, got %d", ErrInvalidConfig, c.AnalyzeTimeoutSec)
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return fmt.Errorf("%w: llm_temperature must be within [0,2], got %v", ErrInvalidConfig, c.LLMTemperature)
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("%w: llm_max_tokens must be positive, got %d", ErrInvalidConfig, c.LLMMaxTokens)
	}
	if err := c.LLM().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LLM builds the generation backend configuration. Endpoint and model fall
// back to the provider defaults.
func (c *Config) LLM() llm.LLMConfig {
	provider := llm.Provider(strings.ToLower(strings.TrimSpace(c.LLMProvider)))
	cfg := llm.DefaultConfig()
	cfg.Provider = provider
	cfg.LogCalls = c.LLMLogCalls
	cfg.Endpoint = c.LLMEndpoint
	if cfg.Endpoint == "" {
		cfg.Endpoint = llm.DefaultEndpoint(provider)
	}
	cfg.Model = c.LLMModel
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel(provider)
	}
	cfg.APIKey = c.LLMAPIKey
	cfg.TimeoutMs = c.LLMTimeoutMs
	cfg.MaxRetries = c.LLMMaxRetries
	cfg.SetAll(c.LLMTemperature, c.LLMMaxTokens)
	return cfg
}

// AnalyzeTimeout is AnalyzeTimeoutSec as a duration.
func (c *Config) AnalyzeTimeout() time.Duration {
	return time.Duration(c.AnalyzeTimeoutSec) * time.Second
}

// Origins splits CORSOrigins, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ResolvedDBPath returns DBPath or the default under the user's home.
func (c *Config) ResolvedDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".nuclea", "nuclea.db"), nil
}
