package ports

import (
	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
)

// DatasetLookup resolves loaded datasets by ID for read-only consumers
type DatasetLookup interface {
	GetByID(id core.ID) (*dataset.Dataset, bool)
	List() []*dataset.Dataset
}
