package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"kakeibo/internal/core"
)

// XLSX renders the snapshot as a single-sheet workbook with the same
// column layout as the CSV export.
func XLSX(items []core.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "entries"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", i, err)
		}
		_ = f.SetCellValue(sheet, cell, col)
	}

	for i, r := range items {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Date.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Category)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Description)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
