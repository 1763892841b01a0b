package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"

	"github.com/cdoebler/rename-invoice-pdfs/internal/common"
)

// FitzExtractor reads PDF page text through MuPDF.
type FitzExtractor struct {
	logger *slog.Logger
}

func NewFitzExtractor(logger *slog.Logger) *FitzExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FitzExtractor{logger: logger}
}

// Extract concatenates the text of every page. Scanned PDFs without a text
// layer come back empty; the caller treats that as a failed extraction.
func (e *FitzExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	doc, err := fitz.New(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("%w: open %s: %v", common.ErrTextExtraction, path, err)
	}
	defer func() {
		if err := doc.Close(); err != nil {
			e.logger.Warn("extract.close_error", "path", path, "error", err)
		}
	}()

	pages := doc.NumPage()
	var sb strings.Builder
	for i := 0; i < pages; i++ {
		select {
		case <-ctx.Done():
			return TextExtractionResult{}, fmt.Errorf("%w: %v", common.ErrTextExtraction, ctx.Err())
		default:
		}
		text, err := doc.Text(i)
		if err != nil {
			return TextExtractionResult{}, fmt.Errorf("%w: page %d of %s: %v", common.ErrTextExtraction, i+1, path, err)
		}
		sb.WriteString(text)
	}

	res := TextExtractionResult{
		Text:     sb.String(),
		Pages:    pages,
		Duration: time.Since(start),
	}
	e.logger.Debug("extract.pdf_text",
		"path", path,
		"pages", pages,
		"bytes", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
