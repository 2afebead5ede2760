package testkit

import (
	"fmt"

	"sheetlens/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// Workbook builds in-memory .xlsx files for tests and demos
type Workbook struct {
	sheet string
	rows  [][]interface{}
}

// NewWorkbook starts a workbook whose first sheet is named sheet
func NewWorkbook(sheet string) *Workbook {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Workbook{sheet: sheet}
}

// Row appends a row of cell values. nil leaves the cell empty.
func (w *Workbook) Row(cells ...interface{}) *Workbook {
	w.rows = append(w.rows, cells)
	return w
}

// Bytes renders the workbook as xlsx content
func (w *Workbook) Bytes() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if w.sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	for i, row := range w.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(w.sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Upload renders the workbook as an xlsx upload named filename
func (w *Workbook) Upload(filename string) (dataset.Upload, error) {
	content, err := w.Bytes()
	if err != nil {
		return dataset.Upload{}, err
	}
	return dataset.Upload{Filename: filename, MimeType: dataset.MimeTypeXLSX, Content: content}, nil
}

// MustUpload is Upload for test setup where failure is fatal
func (w *Workbook) MustUpload(filename string) dataset.Upload {
	upload, err := w.Upload(filename)
	if err != nil {
		panic(err)
	}
	return upload
}

// SalesWorkbook is the four-row region/date/amount sheet used across tests
func SalesWorkbook() *Workbook {
	return NewWorkbook("Sales").
		Row("Region", "Date", "Amount").
		Row("East", "2024-01-05", 10).
		Row("West", "2024-02-10", 5).
		Row("East", "2024-03-01", 7).
		Row("East", "2024-03-02", nil)
}

// CustomersWorkbook is a small customer list keyed by CustomerID
func CustomersWorkbook() *Workbook {
	return NewWorkbook("Customers").
		Row("CustomerID", "Name", "Country").
		Row("C001", "Acme", "US").
		Row("C002", "Globex", "DE").
		Row("C003", "Initech", "US")
}
