package llm

import "context"

// DateExtractor is the one-shot capability both backends implement:
// invoice text in, raw date string out. Implementations get exactly one
// attempt per file; retrying is the caller's policy decision, and the
// caller never retries.
type DateExtractor interface {
	Name() string
	ExtractDate(ctx context.Context, invoiceText string) (string, error)
}

// HealthChecker is implemented by backends that can be probed cheaply
// before spending a full inference call.
type HealthChecker interface {
	Available(ctx context.Context) bool
}

// Outcome classifies a single backend attempt.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailure     Outcome = "failure"
)

// Attempt describes one call to a backend. It exists only within a single
// file's processing and is kept so fallback sequencing can be asserted
// without real network calls.
type Attempt struct {
	Backend string
	Outcome Outcome
	RawDate string
	Err     string
}

// DateResponse is the JSON shape backends are instructed to return.
type DateResponse struct {
	InvoiceDate string `json:"invoice_date"`
}
