package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cdoebler/rename-invoice-pdfs/constants"
	"github.com/cdoebler/rename-invoice-pdfs/internal/ingest"
)

// BatchResult collects per-file outcomes in processing order. It is the
// only state shared across files within a run.
type BatchResult struct {
	RunID    string
	Dir      string
	Started  time.Time
	Finished time.Time
	Outcomes []FileOutcome
	Skipped  int
	Renamed  int
	Failed   int
}

// Runner enumerates a directory and processes each candidate file in
// sequence. One file's failure never aborts the batch; only directory-level
// errors are fatal.
type Runner struct {
	Logger    *slog.Logger
	Processor *Processor
}

func NewRunner(logger *slog.Logger, processor *Processor) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger, Processor: processor}
}

func (r *Runner) Run(ctx context.Context, dir string) (BatchResult, error) {
	res := BatchResult{
		RunID:   uuid.New().String(),
		Dir:     dir,
		Started: time.Now().UTC(),
	}

	paths, err := ingest.ListPDFs(dir)
	if err != nil {
		return res, fmt.Errorf("list pdfs in %s: %w", dir, err)
	}

	r.Logger.Info("pipeline.run.start", "run_id", res.RunID, "dir", dir, "files", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			// Stop enumerating further files; outcomes so far stand and
			// files already renamed remain renamed.
			r.Logger.Warn("pipeline.run.cancelled", "run_id", res.RunID, "error", err)
			break
		}

		out := r.Processor.Process(ctx, path)
		res.Outcomes = append(res.Outcomes, out)
		switch out.Status {
		case constants.StatusSkipped:
			res.Skipped++
		case constants.StatusRenamed:
			res.Renamed++
		default:
			res.Failed++
		}
	}

	res.Finished = time.Now().UTC()
	r.Logger.Info("pipeline.run.done",
		"run_id", res.RunID,
		"files", len(res.Outcomes),
		"skipped", res.Skipped,
		"renamed", res.Renamed,
		"failed", res.Failed,
		"elapsed_ms", res.Finished.Sub(res.Started).Milliseconds(),
	)
	return res, nil
}
