package dataset

import (
	"fmt"
	"strings"
	"time"

	"sheetlens/domain/core"
)

// Operation is a summary aggregation
type Operation string

const (
	OperationCount   Operation = "count"
	OperationSum     Operation = "sum"
	OperationAverage Operation = "average"
)

// ParseOperation parses an operation name, case-insensitively
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(s))); op {
	case OperationCount, OperationSum, OperationAverage:
		return op, nil
	case "avg", "mean":
		return OperationAverage, nil
	}
	return "", core.NewValidationError("operation", fmt.Sprintf("unknown operation %q", s))
}

// DateRange is an inclusive [From, To] filter
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the inclusive range
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// SummaryRequest selects the grouping, operation and optional date range of a summary.
// ValueField names the column sum and average read. When empty a numeric
// GroupByField is read itself and a text one falls back to the first numeric column.
type SummaryRequest struct {
	DatasetID    core.ID    `json:"dataset_id"`
	GroupByField string     `json:"group_by_field"`
	ValueField   string     `json:"value_field,omitempty"`
	Operation    Operation  `json:"operation"`
	DateFilter   *DateRange `json:"date_filter,omitempty"`
}

// SummaryRow is one group of a computed summary
type SummaryRow struct {
	GroupKey string  `json:"group_key"`
	Value    float64 `json:"value"`
	// Missing marks the group that collects rows without a value
	Missing bool `json:"missing,omitempty"`
}

// ColumnClassification lists numeric and date-like columns in column order.
// A column may appear in both lists.
type ColumnClassification struct {
	Numeric []string `json:"numeric_columns"`
	Dates   []string `json:"date_columns"`
}

// IsNumeric reports whether column was classified numeric
func (c ColumnClassification) IsNumeric(column string) bool {
	return contains(c.Numeric, column)
}

// IsDate reports whether column was classified date-like
func (c ColumnClassification) IsDate(column string) bool {
	return contains(c.Dates, column)
}

// FirstDateColumn returns the first date-like column, if any
func (c ColumnClassification) FirstDateColumn() (string, bool) {
	if len(c.Dates) == 0 {
		return "", false
	}
	return c.Dates[0], true
}

// Overview holds headline counts for a dataset
type Overview struct {
	RowCount           int `json:"row_count"`
	ColumnCount        int `json:"column_count"`
	NumericColumnCount int `json:"numeric_column_count"`
}

// Preview is the first rows of a dataset rendered as display strings
type Preview struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Total     int        `json:"total"`
	Truncated bool       `json:"truncated"`
}

// Caption returns the "Showing n of total rows" note, or "" when nothing was cut
func (p Preview) Caption() string {
	if !p.Truncated {
		return ""
	}
	return fmt.Sprintf("Showing %d of %d rows", len(p.Rows), p.Total)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ColumnKind is the dominant kind of the present values in a column
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindDate    ColumnKind = "date"
	KindBoolean ColumnKind = "boolean"
	KindText    ColumnKind = "text"
	KindEmpty   ColumnKind = "empty"
)

// NumericProfile holds the range and mean of a numeric column
type NumericProfile struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ColumnProfile describes the contents of one column
type ColumnProfile struct {
	Column        string          `json:"column"`
	Kind          ColumnKind      `json:"kind"`
	Present       int             `json:"present"`
	Missing       int             `json:"missing"`
	Distinct      int             `json:"distinct"`
	Completeness  float64         `json:"completeness"`
	Mode          string          `json:"mode,omitempty"`
	ModeFrequency int             `json:"mode_frequency,omitempty"`
	Numeric       *NumericProfile `json:"numeric,omitempty"`
}
