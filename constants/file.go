package constants

import "strings"

// PDFExt is the only extension the renamer processes.
const PDFExt = "pdf"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether ext denotes a PDF file, case-insensitively.
func IsPDF(ext string) bool {
	return NormalizeExt(ext) == PDFExt
}
