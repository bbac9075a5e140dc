package export

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

// XLSXBytes returns an XLSX workbook (as bytes) for the batch, one row per
// document, using the same column layout as the CSV export.
func (s *Service) XLSXBytes(results []pipeline.Result) ([]byte, error) {
	start := time.Now()
	columns := Columns(results)

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range results {
		for colIdx, v := range Row(r, columns) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen the identifying columns
	_ = f.SetColWidth(sheet, "A", "A", 48) // source
	_ = f.SetColWidth(sheet, "B", "B", 32) // template
	_ = f.SetColWidth(sheet, "C", "C", 12) // confidence
	if len(columns) > len(coreColumns) {
		last, _ := excelize.ColumnNumberToName(len(columns))
		_ = f.SetColWidth(sheet, "D", last, 20)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportXLSX writes the batch to an XLSX file at destination.
func (s *Service) ExportXLSX(results []pipeline.Result, destination string) error {
	b, err := s.XLSXBytes(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destination, b, 0o644); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
