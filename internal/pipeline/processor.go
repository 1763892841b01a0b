package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cdoebler/rename-invoice-pdfs/constants"
	"github.com/cdoebler/rename-invoice-pdfs/internal/common"
	"github.com/cdoebler/rename-invoice-pdfs/internal/extract"
	"github.com/cdoebler/rename-invoice-pdfs/internal/rename"
)

// FileOutcome is one entry of a BatchResult.
type FileOutcome struct {
	Path    string
	NewName string
	Status  constants.FileStatus
	Stage   constants.Stage
	Kind    string
	Reason  string
}

// Processor runs the full decision pipeline for a single file: classify,
// extract text, extract date, normalize, build name, rename.
type Processor struct {
	Logger  *slog.Logger
	Text    extract.TextExtractor
	Extract *ExtractStage
	Now     func() time.Time
}

func NewProcessor(logger *slog.Logger, text extract.TextExtractor, stage *ExtractStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Extract: stage, Now: time.Now}
}

// Process decides and applies the terminal action for one file. Errors are
// folded into the returned outcome; the batch never sees them.
func (p *Processor) Process(ctx context.Context, path string) FileOutcome {
	name := filepath.Base(path)

	if rename.IsCanonical(name) {
		p.Logger.Info("pipeline.file.skipped", "path", path)
		return FileOutcome{
			Path:   path,
			Status: constants.StatusSkipped,
			Stage:  constants.StageClassify,
			Reason: "already follows the required format",
		}
	}

	text, err := p.Text.Extract(ctx, path)
	if err != nil {
		return p.failed(path, constants.StageExtractText, err)
	}
	if strings.TrimSpace(text.Text) == "" {
		return p.failed(path, constants.StageExtractText,
			fmt.Errorf("%w: no extractable text in %s", common.ErrTextExtraction, name))
	}

	raw, attempts, err := p.Extract.Run(ctx, text.Text)
	if err != nil {
		return p.failed(path, constants.StageExtractDate, err)
	}

	date, err := rename.NormalizeDate(raw, p.Now())
	if err != nil {
		return p.failed(path, constants.StageNormalize, err)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	newName := rename.BuildFilename(date, stem)
	target := filepath.Join(filepath.Dir(path), newName)

	// Collision check at the moment of rename, not earlier.
	if _, err := os.Stat(target); err == nil {
		return p.failed(path, constants.StageRename,
			fmt.Errorf("%w: %s", common.ErrNameCollision, newName))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return p.failed(path, constants.StageRename,
			fmt.Errorf("%w: stat %s: %v", common.ErrRename, newName, err))
	}
	if err := os.Rename(path, target); err != nil {
		return p.failed(path, constants.StageRename,
			fmt.Errorf("%w: %v", common.ErrRename, err))
	}

	p.Logger.Info("pipeline.file.renamed",
		"path", path,
		"new_name", newName,
		"raw_date", raw,
		"attempts", len(attempts),
	)
	return FileOutcome{Path: path, NewName: newName, Status: constants.StatusRenamed}
}

func (p *Processor) failed(path string, stage constants.Stage, err error) FileOutcome {
	p.Logger.Error("pipeline.file.failed",
		"path", path,
		"stage", string(stage),
		"kind", common.Kind(err),
		"error", err,
	)
	return FileOutcome{
		Path:   path,
		Status: constants.StatusFailed,
		Stage:  stage,
		Kind:   common.Kind(err),
		Reason: err.Error(),
	}
}
