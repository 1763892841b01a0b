package llm_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdoebler/rename-invoice-pdfs/internal/llm"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeDateResponseStrictJSON(t *testing.T) {
	raw, err := llm.DecodeDateResponse(`{"invoice_date": "2025-03-21"}`, discard())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-21", raw)
}

func TestDecodeDateResponseFencedJSON(t *testing.T) {
	content := "```json\n{\"invoice_date\": \"2025-03-21\"}\n```"
	raw, err := llm.DecodeDateResponse(content, discard())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-21", raw)
}

func TestDecodeDateResponseJSONWithSurroundingProse(t *testing.T) {
	content := "Here is the result:\n{\"invoice_date\": \"2025-03-21\"}\nLet me know if you need more."
	raw, err := llm.DecodeDateResponse(content, discard())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-21", raw)
}

func TestDecodeDateResponseLenientBareDate(t *testing.T) {
	for _, content := range []string{"2025-03-21", "  21/03/2025  ", "250321"} {
		raw, err := llm.DecodeDateResponse(content, discard())
		require.NoError(t, err, "content %q", content)
		assert.NotEmpty(t, raw)
	}
}

func TestDecodeDateResponseRejectsFreeform(t *testing.T) {
	rejected := []string{
		"",
		"   ",
		"The invoice was issued on March 21st of last year, as far as I can tell.",
		"line one\nline two",
	}
	for _, content := range rejected {
		_, err := llm.DecodeDateResponse(content, discard())
		assert.Error(t, err, "content %q", content)
	}
}

func TestDecodeDateResponseSchemaViolationFallsThrough(t *testing.T) {
	// Wrong shape fails the schema, and the line is too long for the
	// lenient bare-date path.
	_, err := llm.DecodeDateResponse(`{"date": "2025-03-21", "extra": 1, "and": 2}`, discard())
	assert.Error(t, err)
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"no fences", "no fences"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, llm.StripCodeFences(tc.in), "in %q", tc.in)
	}
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := llm.BuildDateJSONSchema()

	assert.NoError(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"invoice_date":"2025-03-21"}`)))
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"invoice_date":"21/03/2025"}`)), "pattern requires ISO form")
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{}`)), "invoice_date is required")
	assert.Error(t, llm.ValidateJSONAgainstSchema(schema, []byte(`{"invoice_date":"2025-03-21","x":1}`)), "no extra properties")
}
