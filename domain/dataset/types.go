package dataset

import (
	"strings"

	"sheetlens/domain/core"
	"sheetlens/domain/datareadiness/ingestion"
)

// Accepted spreadsheet MIME types
const (
	MimeTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeTypeXLS  = "application/vnd.ms-excel"
)

// Record is one parsed row keyed by column name. Absent keys read as missing.
type Record map[string]ingestion.Value

// Get returns the value stored under column, or a missing value
func (r Record) Get(column string) ingestion.Value {
	if v, ok := r[column]; ok {
		return v
	}
	return ingestion.NewMissingValue()
}

// Dataset represents one uploaded file's parsed tabular content
type Dataset struct {
	ID       core.ID `json:"id"`
	Name     string  `json:"name"`
	MimeType string  `json:"mime_type"`

	// Columns are taken from the first record at intake and never change
	Columns []string `json:"columns"`
	Rows    []Record `json:"-"`

	SheetName   string         `json:"sheet_name,omitempty"`
	Fingerprint core.Hash      `json:"fingerprint,omitempty"`
	UploadedAt  core.Timestamp `json:"uploaded_at"`
}

// NewDataset creates a dataset from a parsed table
func NewDataset(name, mimeType string, table *Table) *Dataset {
	return &Dataset{
		ID:         core.NewID(),
		Name:       name,
		MimeType:   mimeType,
		Columns:    table.Columns,
		Rows:       table.Rows,
		SheetName:  table.SheetName,
		UploadedAt: core.Now(),
	}
}

// HasColumn reports whether column is one of the dataset's columns
func (d *Dataset) HasColumn(column string) bool {
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// RowCount returns the number of rows
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// Upload is a raw file submitted at the intake boundary
type Upload struct {
	Filename string
	MimeType string
	Content  []byte
}

// IsSpreadsheet reports whether the declared MIME type is one of the accepted types
func (u Upload) IsSpreadsheet() bool {
	switch strings.ToLower(strings.TrimSpace(u.MimeType)) {
	case MimeTypeXLSX, MimeTypeXLS:
		return true
	}
	return false
}

// Table is the first sheet of a workbook decoded into flat records
type Table struct {
	SheetName string
	Columns   []string
	Rows      []Record
}

// Relationship is a declared key correspondence between two datasets
type Relationship struct {
	SourceFileID core.ID `json:"source_file_id"`
	SourceKey    string  `json:"source_key"`
	TargetFileID core.ID `json:"target_file_id"`
	TargetKey    string  `json:"target_key"`
}

// RelationshipView is a relationship with file names resolved for display
type RelationshipView struct {
	Relationship
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
}

// String renders the view as "source (key) -> target (key)"
func (v RelationshipView) String() string {
	return v.SourceName + " (" + v.SourceKey + ") -> " + v.TargetName + " (" + v.TargetKey + ")"
}
