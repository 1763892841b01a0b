// Package ledger persists run history in a local sqlite file so repeated
// runs over the same directory can be audited later.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cdoebler/rename-invoice-pdfs/internal/pipeline"
)

type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	directory   TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	skipped     INTEGER NOT NULL,
	renamed     INTEGER NOT NULL,
	failed      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_files (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	path     TEXT NOT NULL,
	new_name TEXT NOT NULL DEFAULT '',
	status   TEXT NOT NULL,
	stage    TEXT NOT NULL DEFAULT '',
	kind     TEXT NOT NULL DEFAULT '',
	reason   TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, position)
);`

// Open opens (creating if needed) the ledger database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	logger.Info("ledger.opened", "path", path)
	return &Ledger{db: db, logger: logger}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordRun writes a run and its per-file outcomes in one transaction.
func (l *Ledger) RecordRun(ctx context.Context, res pipeline.BatchResult) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, directory, started_at, finished_at, skipped, renamed, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Dir,
		res.Started.Format(time.RFC3339), res.Finished.Format(time.RFC3339),
		res.Skipped, res.Renamed, res.Failed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, out := range res.Outcomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, position, path, new_name, status, stage, kind, reason)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			res.RunID, i, out.Path, out.NewName,
			string(out.Status), string(out.Stage), out.Kind, out.Reason,
		); err != nil {
			return fmt.Errorf("insert run file %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	l.logger.Info("ledger.run_recorded", "run_id", res.RunID, "files", len(res.Outcomes))
	return nil
}

// LastRun returns the counters of the most recent run over directory, or
// sql.ErrNoRows when the directory has never been processed.
func (l *Ledger) LastRun(ctx context.Context, directory string) (pipeline.BatchResult, error) {
	var res pipeline.BatchResult
	var started, finished string
	err := l.db.QueryRowContext(ctx,
		`SELECT id, directory, started_at, finished_at, skipped, renamed, failed
		 FROM runs WHERE directory = ? ORDER BY started_at DESC LIMIT 1`,
		directory,
	).Scan(&res.RunID, &res.Dir, &started, &finished, &res.Skipped, &res.Renamed, &res.Failed)
	if err != nil {
		return res, err
	}
	res.Started, _ = time.Parse(time.RFC3339, started)
	res.Finished, _ = time.Parse(time.RFC3339, finished)
	return res, nil
}
