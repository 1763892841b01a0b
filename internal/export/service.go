// Package export renders batch results as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/cdoebler/rename-invoice-pdfs/internal/pipeline"
)

// WriteBatchReport returns an XLSX workbook (as bytes) with one row per
// processed file: status, new name, failing stage, error kind and reason.
func WriteBatchReport(res pipeline.BatchResult, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	const sheet = "Batch"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"Status",
		"New Name",
		"Stage",
		"Error Kind",
		"Reason",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, out := range res.Outcomes {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, out.Path)
		write(2, string(out.Status))
		write(3, out.NewName)
		write(4, string(out.Stage))
		write(5, out.Kind)
		write(6, out.Reason)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	logger.Info("export.report_ready", "run_id", res.RunID, "rows", len(res.Outcomes), "bytes", buf.Len())
	return buf.Bytes(), nil
}
