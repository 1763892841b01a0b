package llm

import "encoding/json"

// BuildDateJSONSchema returns the JSON-Schema (draft 2020-12 subset) that
// backend responses must satisfy. It is sent to the model as part of the
// prompt and used locally to validate what comes back.
func BuildDateJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"invoice_date": map[string]any{
				"type":    "string",
				"pattern": `^\d{4}-\d{2}-\d{2}$`,
			},
		},
		"required": []string{"invoice_date"},
	}
}

// MustJSON renders v as indented JSON for embedding in a prompt.
func MustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
