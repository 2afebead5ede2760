package excel

import (
	"bytes"
	"fmt"

	"sheetlens/domain/datareadiness/ingestion"

	"github.com/extrame/xls"
)

// readXLS reads the first sheet of a legacy BIFF workbook.
// The BIFF reader only exposes display strings, so every cell goes through the coercer.
func (r *WorkbookReader) readXLS(content []byte) (grid *sheetGrid, err error) {
	// the BIFF decoder panics on some malformed streams
	defer func() {
		if rec := recover(); rec != nil {
			grid = nil
			err = fmt.Errorf("malformed xls workbook: %v", rec)
		}
	}()

	charset := r.config.XLSCharset
	if charset == "" {
		charset = "utf-8"
	}

	wb, err := xls.OpenReader(bytes.NewReader(content), charset)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no readable sheet")
	}

	grid = &sheetGrid{name: sheet.Name}
	headerFound := false
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			continue
		}

		raw := make([]string, row.LastCol())
		for c := range raw {
			raw[c] = row.Col(c)
		}

		if !headerFound {
			if isBlankRow(raw) {
				continue
			}
			grid.headers = raw
			headerFound = true
			continue
		}

		values := make([]ingestion.Value, len(raw))
		for c, cell := range raw {
			values[c] = r.xlsCellValue(cell)
		}
		grid.cells = append(grid.cells, values)
	}
	return grid, nil
}

func (r *WorkbookReader) xlsCellValue(cell string) ingestion.Value {
	if iso, ok := r.coercer.NormalizeDate(cell); ok {
		return ingestion.NewStringValue(iso)
	}
	return r.coercer.CoerceCell(cell)
}

// sheetRow returns nil for row indexes the sheet never declared.
// The BIFF reader dereferences the missing row before returning it.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
