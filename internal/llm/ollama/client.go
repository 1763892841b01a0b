package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cdoebler/rename-invoice-pdfs/internal/llm"
)

func (c *Client) Name() string { return "ollama" }

// Available probes GET /api/version with a short timeout. A server that does
// not answer in time is treated as not running; the caller falls back
// instead of waiting out the full generate timeout.
func (c *Client) Available(ctx context.Context) bool {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		c.logger.Debug("ollama.probe.failed", "url", url, "error", err)
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return resp.StatusCode == http.StatusOK
}

// ExtractDate implements llm.DateExtractor against a non-streaming
// /api/generate call with format=json.
func (c *Client) ExtractDate(ctx context.Context, invoiceText string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("ollama.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(invoiceText),
	)

	body := map[string]any{
		"model":   c.cfg.Model,
		"system":  llm.BuildSystemPrompt(),
		"prompt":  llm.BuildUserPrompt(invoiceText) + "\n\nJSON Schema:\n" + llm.MustJSON(llm.BuildDateJSONSchema()),
		"stream":  false,
		"format":  "json",
		"options": map[string]any{"temperature": 0},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/generate"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, nil, c.logger)
	if err != nil {
		c.logger.Error("ollama.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	var gr struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	date, err := llm.DecodeDateResponse(gr.Response, c.logger)
	if err != nil {
		c.logger.Error("ollama.extract.bad_response",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("interpret ollama response: %w", err)
	}

	c.logger.Info("ollama.extract.ok",
		"req_id", rid,
		"date", date,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return date, nil
}
