package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/cdoebler/rename-invoice-pdfs/internal/common"
	"github.com/cdoebler/rename-invoice-pdfs/internal/llm"
)

// ExtractStage drives the two-tier date extraction: one attempt against the
// local backend when it is configured and reachable, then one attempt
// against the hosted fallback. No retries within a backend — a transient
// local outage must not block the batch, and two stateless one-shot calls
// bound per-file latency.
type ExtractStage struct {
	Logger    *slog.Logger
	Primary   llm.DateExtractor // nil when the local backend is not configured
	Secondary llm.DateExtractor // nil when the hosted backend is not configured
}

func NewExtractStage(logger *slog.Logger, primary, secondary llm.DateExtractor) *ExtractStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStage{Logger: logger, Primary: primary, Secondary: secondary}
}

// Run returns the raw date string from the first successful backend, plus
// the full attempt trail for reporting. Whitespace-only invoice text fails
// immediately without contacting any backend.
func (s *ExtractStage) Run(ctx context.Context, invoiceText string) (string, []llm.Attempt, error) {
	if strings.TrimSpace(invoiceText) == "" {
		return "", nil, fmt.Errorf("%w: empty invoice text", common.ErrTextExtraction)
	}

	var attempts []llm.Attempt
	for _, backend := range []llm.DateExtractor{s.Primary, s.Secondary} {
		if backend == nil {
			continue
		}
		att := s.attempt(ctx, backend, invoiceText)
		attempts = append(attempts, att)
		if att.Outcome == llm.OutcomeSuccess {
			return att.RawDate, attempts, nil
		}
	}

	if len(attempts) == 0 {
		return "", nil, fmt.Errorf("%w: no backend configured", common.ErrBackendUnavailable)
	}
	last := attempts[len(attempts)-1]
	kind := common.ErrBackendFailure
	if last.Outcome == llm.OutcomeUnavailable {
		kind = common.ErrBackendUnavailable
	}
	return "", attempts, fmt.Errorf("%w: %s: %s", kind, last.Backend, last.Err)
}

func (s *ExtractStage) attempt(ctx context.Context, backend llm.DateExtractor, text string) llm.Attempt {
	att := llm.Attempt{Backend: backend.Name()}

	if hc, ok := backend.(llm.HealthChecker); ok && !hc.Available(ctx) {
		att.Outcome = llm.OutcomeUnavailable
		att.Err = "availability probe failed"
		s.Logger.Warn("pipeline.backend.unavailable", "backend", att.Backend)
		return att
	}

	raw, err := backend.ExtractDate(ctx, text)
	if err != nil {
		att.Outcome = llm.OutcomeFailure
		if isTransport(err) {
			att.Outcome = llm.OutcomeUnavailable
		}
		att.Err = err.Error()
		s.Logger.Warn("pipeline.backend.failed",
			"backend", att.Backend,
			"outcome", string(att.Outcome),
			"error", err,
		)
		return att
	}

	att.Outcome = llm.OutcomeSuccess
	att.RawDate = raw
	return att
}

// isTransport distinguishes "could not reach the backend" from "the backend
// answered badly". Timeouts count as unreachable.
func isTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
