package rename

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ToKebabCase converts a filename stem to lowercase kebab case: runs of
// non-alphanumeric characters collapse into a single hyphen and leading or
// trailing hyphens are stripped. Idempotent.
func ToKebabCase(stem string) string {
	kebab := nonAlnum.ReplaceAllString(stem, "-")
	kebab = strings.Trim(kebab, "-")
	return strings.ToLower(kebab)
}

// BuildFilename produces the canonical YYMMDD-kebab-case.pdf name for a
// date and original stem. The stem must be non-empty; directory enumeration
// never yields files without a base name.
func BuildFilename(d CanonicalDate, stem string) string {
	return d.YYMMDD() + "-" + ToKebabCase(stem) + ".pdf"
}
