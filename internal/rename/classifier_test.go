package rename_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdoebler/rename-invoice-pdfs/internal/rename"
)

func TestIsCanonical(t *testing.T) {
	canonical := []string{
		"250321-a-file.pdf",
		"000101-x.pdf",
		"991231-invoice-2024-q3.pdf",
		"250321-123456.pdf", // digits-only stems are valid kebab tokens
		"250321-a.pdf",
	}
	for _, name := range canonical {
		assert.True(t, rename.IsCanonical(name), "expected canonical: %q", name)
	}

	needsProcessing := []string{
		"",
		"a-file.pdf",              // no date prefix
		"25032-a-file.pdf",        // five digits
		"2503211-a-file.pdf",      // seven digits
		"250321-A-file.pdf",       // uppercase letter
		"250321-a-file.PDF",       // uppercase extension
		"250321-a_file.pdf",       // underscore separator
		"250321-a--file.pdf",      // doubled hyphen
		"250321--a-file.pdf",      // empty first token
		"250321-a-file-.pdf",      // trailing hyphen
		"250321-a-file.pdf.bak",   // extra suffix
		"x250321-a-file.pdf",      // leading junk
		"250321-a-file.txt",       // wrong extension
		"250321-.pdf",             // no stem
		"250321-a file.pdf",       // space
		"250321-ä-file.pdf",       // non-ascii
	}
	for _, name := range needsProcessing {
		assert.False(t, rename.IsCanonical(name), "expected needs-processing: %q", name)
	}
}
