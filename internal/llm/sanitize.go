package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// maxBareDateLen bounds the lenient path: a real date in any accepted form
// fits comfortably; anything longer is freeform prose.
const maxBareDateLen = 32

// DecodeDateResponse interprets a model completion. Strict path first: strip
// markdown fences, isolate the JSON object, validate it against the date
// schema. Lenient path second: a model that ignored the JSON instruction but
// still answered with a single short date line is salvaged — the normalizer
// downstream decides whether the string is a usable date.
func DecodeDateResponse(content string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := StripCodeFences(content)
	if doc := isolateJSONObject(cleaned); doc != "" {
		if err := ValidateJSONAgainstSchema(BuildDateJSONSchema(), []byte(doc)); err == nil {
			var resp DateResponse
			if err := json.Unmarshal([]byte(doc), &resp); err == nil {
				return resp.InvoiceDate, nil
			}
		} else {
			logger.Warn("llm.decode.schema_mismatch", "error", err)
		}
	}

	line := strings.TrimSpace(cleaned)
	if line == "" {
		return "", fmt.Errorf("empty response")
	}
	if strings.ContainsAny(line, "\n") || len(line) > maxBareDateLen {
		return "", fmt.Errorf("freeform response, no single date found")
	}
	logger.Warn("llm.decode.lenient_bare_date", "raw", line)
	return line, nil
}

// StripCodeFences removes a surrounding markdown code fence, with or
// without a language tag, and trims whitespace.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the ```json tag line
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// isolateJSONObject returns the outermost {...} span in s, or "".
func isolateJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
