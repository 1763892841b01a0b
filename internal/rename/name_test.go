package rename_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cdoebler/rename-invoice-pdfs/internal/rename"
)

func TestToKebabCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A file", "a-file"},
		{"Invoice_2024 (final)", "invoice-2024-final"},
		{"--already--kebab--", "already-kebab"},
		{"Straße & Söhne", "stra-e-s-hne"},
		{"simple", "simple"},
		{"123456", "123456"},
		{"a.b.c", "a-b-c"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rename.ToKebabCase(tc.in), "in %q", tc.in)
	}
}

func TestToKebabCaseIdempotent(t *testing.T) {
	for _, stem := range []string{"A file", "Invoice #42 — March", "x__y", "already-kebab"} {
		once := rename.ToKebabCase(stem)
		assert.Equal(t, once, rename.ToKebabCase(once), "stem %q", stem)
	}
}

func TestBuildFilename(t *testing.T) {
	d := rename.CanonicalDate{Year: 2025, Month: time.March, Day: 21}
	assert.Equal(t, "250321-a-file.pdf", rename.BuildFilename(d, "A file"))

	// Round-trip stability: building from a built name's stem changes nothing.
	built := rename.BuildFilename(d, "Some Invoice.v2")
	stem := built[len("250321-") : len(built)-len(".pdf")]
	assert.Equal(t, built, rename.BuildFilename(d, stem))

	// The output always satisfies the classifier.
	assert.True(t, rename.IsCanonical(built))
}
