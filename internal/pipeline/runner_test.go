package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdoebler/rename-invoice-pdfs/constants"
	"github.com/cdoebler/rename-invoice-pdfs/internal/pipeline"
)

func TestRunnerProcessesEveryFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "alpha.pdf")
	touch(t, dir, "beta.PDF")
	touch(t, dir, "250321-done.pdf")
	touch(t, dir, "notes.txt") // ignored entirely

	text := &fakeText{texts: map[string]string{
		"alpha.pdf": "Invoice dated 2025-03-21",
		// beta.PDF missing on purpose: text extraction fails for it
	}}
	primary := &fakeBackend{name: "ollama", raw: "2025-03-21"}
	runner := pipeline.NewRunner(discard(), newProcessor(text, primary, nil))

	res, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, res.Outcomes, 3, "one outcome per pdf, txt excluded")
	assert.Equal(t, 1, res.Renamed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Failed)
	assert.NotEmpty(t, res.RunID)
	assert.False(t, res.Finished.Before(res.Started))

	// Enumeration order is the sorted directory order.
	assert.Equal(t, "250321-done.pdf", filepath.Base(res.Outcomes[0].Path))
	assert.Equal(t, "alpha.pdf", filepath.Base(res.Outcomes[1].Path))
	assert.Equal(t, "beta.PDF", filepath.Base(res.Outcomes[2].Path))
}

func TestRunnerOneFailureDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "bad.pdf")
	touch(t, dir, "good.pdf")

	// bad.pdf has no entry, so its text extraction fails.
	text := &fakeText{texts: map[string]string{"good.pdf": "Invoice dated 2025-03-21"}}
	primary := &fakeBackend{name: "ollama", raw: "2025-03-21"}
	runner := pipeline.NewRunner(discard(), newProcessor(text, primary, nil))

	res, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 2)
	assert.Equal(t, constants.StatusFailed, res.Outcomes[0].Status)
	assert.Equal(t, constants.StatusRenamed, res.Outcomes[1].Status)
}

func TestRunnerMissingDirectoryIsFatal(t *testing.T) {
	runner := pipeline.NewRunner(discard(), newProcessor(&fakeText{}, &fakeBackend{name: "ollama"}, nil))

	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestRunnerEmptyDirectory(t *testing.T) {
	runner := pipeline.NewRunner(discard(), newProcessor(&fakeText{}, &fakeBackend{name: "ollama"}, nil))

	res, err := runner.Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, res.Outcomes)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	touch(t, dir, "b.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := &fakeText{texts: map[string]string{}}
	runner := pipeline.NewRunner(discard(), newProcessor(text, &fakeBackend{name: "ollama"}, nil))

	res, err := runner.Run(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, res.Outcomes, "no file work after cancellation")
	assert.Equal(t, 0, text.calls)
}
