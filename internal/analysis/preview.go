package analysis

import (
	"sheetlens/domain/dataset"
	"sheetlens/internal/profiling"
)

// DefaultPreviewRows is the number of rows a preview shows when none is requested
const DefaultPreviewRows = 5

// Overview returns the headline row, column and numeric column counts
func Overview(ds *dataset.Dataset) dataset.Overview {
	if ds == nil {
		return dataset.Overview{}
	}
	return dataset.Overview{
		RowCount:           ds.RowCount(),
		ColumnCount:        len(ds.Columns),
		NumericColumnCount: len(profiling.ClassifyColumns(ds).Numeric),
	}
}

// Preview renders the first n rows as display strings in column order.
// Missing cells render as empty strings.
func Preview(ds *dataset.Dataset, n int) dataset.Preview {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	p := dataset.Preview{Columns: []string{}, Rows: [][]string{}}
	if ds == nil {
		return p
	}

	p.Columns = append(p.Columns, ds.Columns...)
	p.Total = ds.RowCount()

	limit := n
	if limit > p.Total {
		limit = p.Total
	}
	for _, row := range ds.Rows[:limit] {
		cells := make([]string, len(ds.Columns))
		for i, col := range ds.Columns {
			if v := row.Get(col); !v.IsMissing() {
				cells[i] = v.String()
			}
		}
		p.Rows = append(p.Rows, cells)
	}
	p.Truncated = p.Total > limit
	return p
}

// OperationsFor lists the operations that make sense for field.
// Non-numeric fields can only be counted.
func OperationsFor(classification dataset.ColumnClassification, field string) []dataset.Operation {
	if classification.IsNumeric(field) {
		return []dataset.Operation{dataset.OperationCount, dataset.OperationSum, dataset.OperationAverage}
	}
	return []dataset.Operation{dataset.OperationCount}
}

// GroupableFields lists the columns a summary can group by
func GroupableFields(ds *dataset.Dataset) []string {
	if ds == nil {
		return []string{}
	}
	return append([]string{}, ds.Columns...)
}
