package ledger_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdoebler/rename-invoice-pdfs/constants"
	"github.com/cdoebler/rename-invoice-pdfs/internal/ledger"
	"github.com/cdoebler/rename-invoice-pdfs/internal/pipeline"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleResult(dir string, started time.Time) pipeline.BatchResult {
	return pipeline.BatchResult{
		RunID:    "run-" + started.Format("150405"),
		Dir:      dir,
		Started:  started,
		Finished: started.Add(3 * time.Second),
		Outcomes: []pipeline.FileOutcome{
			{Path: filepath.Join(dir, "A file.PDF"), NewName: "250321-a-file.pdf", Status: constants.StatusRenamed},
			{Path: filepath.Join(dir, "250101-old.pdf"), Status: constants.StatusSkipped, Stage: constants.StageClassify, Reason: "already follows the required format"},
			{Path: filepath.Join(dir, "broken.pdf"), Status: constants.StatusFailed, Stage: constants.StageExtractText, Kind: "TextExtractionFailed", Reason: "no extractable text"},
		},
		Skipped: 1,
		Renamed: 1,
		Failed:  1,
	}
}

func TestRecordAndLastRun(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := ledger.Open(ctx, path, discard())
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	res := sampleResult("/invoices", time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, l.RecordRun(ctx, res))

	got, err := l.LastRun(ctx, "/invoices")
	require.NoError(t, err)
	assert.Equal(t, res.RunID, got.RunID)
	assert.Equal(t, 1, got.Renamed)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, 1, got.Failed)
	assert.True(t, got.Started.Equal(res.Started))
}

func TestLastRunPicksMostRecent(t *testing.T) {
	ctx := context.Background()
	l, err := ledger.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), discard())
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	older := sampleResult("/invoices", time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC))
	newer := sampleResult("/invoices", time.Date(2025, time.June, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, l.RecordRun(ctx, older))
	require.NoError(t, l.RecordRun(ctx, newer))

	got, err := l.LastRun(ctx, "/invoices")
	require.NoError(t, err)
	assert.Equal(t, newer.RunID, got.RunID)
}

func TestLastRunUnknownDirectory(t *testing.T) {
	ctx := context.Background()
	l, err := ledger.Open(ctx, filepath.Join(t.TempDir(), "ledger.db"), discard())
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	_, err = l.LastRun(ctx, "/never-seen")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestOpenSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := ledger.Open(ctx, path, discard())
	require.NoError(t, err)
	res := sampleResult("/invoices", time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, l.RecordRun(ctx, res))
	require.NoError(t, l.Close())

	l, err = ledger.Open(ctx, path, discard())
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	got, err := l.LastRun(ctx, "/invoices")
	require.NoError(t, err)
	assert.Equal(t, res.RunID, got.RunID)
}
