package curriculum

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/abitbot/curriculum/internal/errors"
)

// extractXLSXSheets reads XLSX bytes into per-worksheet cell grids. Every
// sheet is returned; curriculum tables show up on arbitrary sheets depending
// on who exported the workbook.
func extractXLSXSheets(data []byte) ([][][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewExtractError("", string(FormatXLSX), fmt.Errorf("open workbook: %w", err))
	}
	defer func() { _ = f.Close() }()

	var sheets [][][]string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, apperrors.NewExtractError("", string(FormatXLSX), fmt.Errorf("read sheet %q: %w", name, err))
		}
		sheets = append(sheets, rows)
	}
	return sheets, nil
}
