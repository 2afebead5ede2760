package profiling

import (
	"sheetlens/adapters/datareadiness/coercer"
	"sheetlens/domain/dataset"
)

// ColumnClassifier infers which columns hold numbers and which hold dates
type ColumnClassifier struct {
	coercer *coercer.TypeCoercer
}

// NewColumnClassifier creates a classifier that parses dates with c
func NewColumnClassifier(c *coercer.TypeCoercer) *ColumnClassifier {
	if c == nil {
		c = coercer.Default()
	}
	return &ColumnClassifier{coercer: c}
}

// Classify scans every row of ds. A column is numeric if any row holds a number
// in it, and date-like if any row's value parses as a date. Numbers are tested
// as dates too, so a column can be both.
func (cc *ColumnClassifier) Classify(ds *dataset.Dataset) dataset.ColumnClassification {
	result := dataset.ColumnClassification{Numeric: []string{}, Dates: []string{}}
	if ds == nil || len(ds.Rows) == 0 {
		return result
	}

	for _, col := range ds.Columns {
		numeric, date := false, false
		for _, row := range ds.Rows {
			v, ok := row[col]
			if !ok || v.IsMissing() {
				continue
			}
			if !numeric && v.IsNumeric() {
				numeric = true
			}
			if !date {
				_, date = cc.coercer.ParseDate(v)
			}
			if numeric && date {
				break
			}
		}
		if numeric {
			result.Numeric = append(result.Numeric, col)
		}
		if date {
			result.Dates = append(result.Dates, col)
		}
	}
	return result
}

var defaultClassifier = NewColumnClassifier(nil)

// ClassifyColumns classifies ds with the default date layouts
func ClassifyColumns(ds *dataset.Dataset) dataset.ColumnClassification {
	return defaultClassifier.Classify(ds)
}
