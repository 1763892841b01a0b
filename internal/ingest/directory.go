// Package ingest enumerates the PDF files a batch run will consider.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cdoebler/rename-invoice-pdfs/constants"
)

// ListPDFs returns the absolute paths of PDF files directly inside dir.
// Extension matching is case-insensitive, hidden files are skipped, and
// subdirectories are not descended: invoices live flat in the scanned
// directory. A missing or unreadable directory is the fatal run error.
func ListPDFs(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if IsHidden(name) {
			continue
		}
		if !constants.IsPDF(filepath.Ext(name)) {
			continue
		}
		paths = append(paths, filepath.Join(abs, name))
	}
	return paths, nil
}
