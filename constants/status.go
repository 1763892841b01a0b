package constants

// FileStatus is the terminal outcome for a single file within a batch run.
type FileStatus string

// Stable values (these exact strings appear in the ledger and reports).
const (
	StatusSkipped FileStatus = "SKIPPED" // already canonical, left untouched
	StatusRenamed FileStatus = "RENAMED" // renamed to canonical form
	StatusFailed  FileStatus = "FAILED"  // terminal failure, file untouched
)

// Stage identifies where in the per-file pipeline an outcome was decided.
type Stage string

const (
	StageClassify    Stage = "classify"
	StageExtractText Stage = "extract_text"
	StageExtractDate Stage = "extract_date"
	StageNormalize   Stage = "normalize"
	StageRename      Stage = "rename"
)
