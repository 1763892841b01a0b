package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cdoebler/rename-invoice-pdfs/internal/llm"
)

const apiVersion = "2023-06-01"

func (c *Client) Name() string { return "anthropic" }

// ExtractDate implements llm.DateExtractor against the /v1/messages API.
func (c *Client) ExtractDate(ctx context.Context, invoiceText string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("anthropic.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(invoiceText),
	)

	body := map[string]any{
		"model":      c.cfg.Model,
		"max_tokens": c.cfg.MaxTokens,
		"system":     llm.BuildSystemPrompt() + "\n\nJSON Schema:\n" + llm.MustJSON(llm.BuildDateJSONSchema()),
		"messages": []map[string]any{
			{"role": "user", "content": llm.BuildUserPrompt(invoiceText)},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": apiVersion,
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/messages"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("anthropic.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var mr struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &mr); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(mr.Content) == 0 {
		return "", fmt.Errorf("no content blocks in anthropic response")
	}

	date, err := llm.DecodeDateResponse(mr.Content[0].Text, c.logger)
	if err != nil {
		c.logger.Error("anthropic.extract.bad_response",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("interpret anthropic response: %w", err)
	}

	c.logger.Info("anthropic.extract.ok",
		"req_id", rid,
		"date", date,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return date, nil
}
