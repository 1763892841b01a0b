package ollama

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the local Ollama client.
type Config struct {
	BaseURL      string        // e.g. http://localhost:11434; if empty, falls back to env OLLAMA_API_URL
	Model        string        // e.g. "llama3.1"
	Timeout      time.Duration // http client timeout for /api/generate
	ProbeTimeout time.Duration // short timeout for the availability probe
}

type Client struct {
	cfg    Config
	http   *http.Client
	probe  *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("OLLAMA_API_URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		probe:  &http.Client{Timeout: cfg.ProbeTimeout},
		logger: logger,
	}
}
