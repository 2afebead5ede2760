package excel

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sheetlens/adapters/datareadiness/coercer"
	"sheetlens/domain/core"
	"sheetlens/domain/datareadiness/ingestion"
	"sheetlens/domain/dataset"
	"sheetlens/internal"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader decodes the first sheet of an uploaded workbook into records.
// It handles .xlsx through excelize and legacy .xls through the BIFF reader in xls.go.
type WorkbookReader struct {
	config  ReaderConfig
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewWorkbookReader creates a reader with the given configuration
func NewWorkbookReader(config ReaderConfig) *WorkbookReader {
	return &WorkbookReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  internal.DefaultLogger,
	}
}

// Parse decodes an upload according to its declared MIME type
func (r *WorkbookReader) Parse(ctx context.Context, upload dataset.Upload) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !upload.IsSpreadsheet() {
		return nil, core.NewUnsupportedFileTypeError(upload.Filename, upload.MimeType)
	}
	if r.config.MaxFileSize > 0 && int64(len(upload.Content)) > r.config.MaxFileSize {
		return nil, core.NewParseError(upload.Filename,
			fmt.Errorf("file is %d bytes, limit is %d", len(upload.Content), r.config.MaxFileSize))
	}

	startTime := time.Now()
	var (
		grid *sheetGrid
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(upload.MimeType)) {
	case dataset.MimeTypeXLSX:
		grid, err = r.readXLSX(upload.Content)
	case dataset.MimeTypeXLS:
		grid, err = r.readXLS(upload.Content)
	}
	if err != nil {
		r.logger.Warn("[WorkbookReader] failed to read %s: %v", upload.Filename, err)
		return nil, core.NewParseError(upload.Filename, err)
	}

	table := grid.toTable()
	r.logger.Debug("[WorkbookReader] %s sheet %q decoded in %.2fms (%d columns, %d rows)",
		upload.Filename, table.SheetName, float64(time.Since(startTime).Nanoseconds())/1e6,
		len(table.Columns), len(table.Rows))
	return table, nil
}

// readXLSX reads the first sheet of an Office Open XML workbook
func (r *WorkbookReader) readXLSX(content []byte) (*sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	grid := &sheetGrid{name: sheet}
	headerFound := false
	for rowIdx, row := range rows {
		if !headerFound {
			if isBlankRow(row) {
				continue
			}
			grid.headers = row
			headerFound = true
			continue
		}

		values := make([]ingestion.Value, len(row))
		for colIdx, formatted := range row {
			values[colIdx] = r.xlsxCellValue(f, sheet, colIdx, rowIdx, formatted)
		}
		grid.cells = append(grid.cells, values)
	}
	return grid, nil
}

// xlsxCellValue types one cell using Excel's native cell type as the primary signal.
// Shared and inline strings stay text; date-formatted cells become ISO date text;
// numeric cells use the unformatted stored value.
func (r *WorkbookReader) xlsxCellValue(f *excelize.File, sheet string, colIdx, rowIdx int, formatted string) ingestion.Value {
	if strings.TrimSpace(formatted) == "" {
		return ingestion.NewMissingValue()
	}

	cellRef, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return r.coercer.CoerceCell(formatted)
	}

	cellType, err := f.GetCellType(sheet, cellRef)
	if err != nil {
		return r.coercer.CoerceCell(formatted)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return ingestion.NewStringValue(strings.TrimSpace(formatted))
	case excelize.CellTypeBool:
		return r.coercer.CoerceCell(formatted)
	}

	if iso, ok := r.coercer.NormalizeDate(formatted); ok {
		return ingestion.NewStringValue(iso)
	}

	raw, err := f.GetCellValue(sheet, cellRef, excelize.Options{RawCellValue: true})
	if err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return ingestion.NewNumericValue(n)
		}
	}
	return r.coercer.CoerceCell(formatted)
}
