package extract

import (
	"context"
	"time"
)

// TextExtractor is stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Duration time.Duration
}
