package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Ollama    OllamaConfig
	Anthropic AnthropicConfig
	Ledger    LedgerConfig
}

// OllamaConfig holds the local (primary) backend configuration.
type OllamaConfig struct {
	BaseURL      string
	Model        string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// Configured reports whether the local backend can be used at all. An
// unconfigured primary is a valid state, not an error.
func (c OllamaConfig) Configured() bool {
	return c.BaseURL != "" && c.Model != ""
}

// AnthropicConfig holds the hosted (secondary) backend configuration.
type AnthropicConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

func (c AnthropicConfig) Configured() bool {
	return c.APIKey != ""
}

// LedgerConfig holds run-history configuration.
type LedgerConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:      getEnv("OLLAMA_API_URL", ""),
			Model:        getEnv("OLLAMA_MODEL", ""),
			Timeout:      getEnvAsDuration("OLLAMA_TIMEOUT", 60*time.Second),
			ProbeTimeout: getEnvAsDuration("OLLAMA_PROBE_TIMEOUT", 2*time.Second),
		},
		Anthropic: AnthropicConfig{
			BaseURL:   getEnv("ANTHROPIC_API_URL", "https://api.anthropic.com"),
			APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			Model:     getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			MaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", 1024),
			Timeout:   getEnvAsDuration("ANTHROPIC_TIMEOUT", 45*time.Second),
		},
		Ledger: LedgerConfig{
			Path: getEnv("LEDGER_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks that at least one inference backend is usable.
func (c *Config) Validate() error {
	if !c.Ollama.Configured() && !c.Anthropic.Configured() {
		return NewAppError("CONFIG_ERROR",
			"no inference backend configured: set OLLAMA_API_URL and OLLAMA_MODEL, or ANTHROPIC_API_KEY",
			ErrInvalidInput)
	}
	return nil
}
