package ports

import (
	"sheetlens/domain/dataset"
)

// ColumnProfiler describes the contents of each column of a dataset
type ColumnProfiler interface {
	Profile(ds *dataset.Dataset) []dataset.ColumnProfile
}
