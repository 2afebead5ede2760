package dataset

import (
	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
)

// DefaultMaxFiles is the registry capacity when none is configured
const DefaultMaxFiles = 3

// Registry is an immutable, ordered set of loaded datasets.
// Every mutation returns a new Registry and leaves the receiver untouched.
type Registry struct {
	maxFiles int
	datasets []*dataset.Dataset
}

// NewRegistry creates an empty registry holding at most maxFiles datasets
func NewRegistry(maxFiles int) *Registry {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &Registry{maxFiles: maxFiles, datasets: []*dataset.Dataset{}}
}

// MaxFiles returns the registry capacity
func (r *Registry) MaxFiles() int {
	return r.maxFiles
}

// Len returns the number of datasets held
func (r *Registry) Len() int {
	return len(r.datasets)
}

// CanAccept reports whether n more datasets fit
func (r *Registry) CanAccept(n int) bool {
	return len(r.datasets)+n <= r.maxFiles
}

// AddDatasets returns a registry with incoming appended. Either all of incoming
// is added or, when capacity would be exceeded, none is.
func (r *Registry) AddDatasets(incoming ...*dataset.Dataset) (*Registry, error) {
	if !r.CanAccept(len(incoming)) {
		return r, core.NewCapacityError(len(r.datasets), len(incoming), r.maxFiles)
	}

	next := make([]*dataset.Dataset, 0, len(r.datasets)+len(incoming))
	next = append(next, r.datasets...)
	next = append(next, incoming...)
	return &Registry{maxFiles: r.maxFiles, datasets: next}, nil
}

// RemoveDataset returns a registry without the dataset identified by id
func (r *Registry) RemoveDataset(id core.ID) (*Registry, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return r, core.NewNotFoundError("dataset", id)
	}

	next := make([]*dataset.Dataset, 0, len(r.datasets)-1)
	next = append(next, r.datasets[:idx]...)
	next = append(next, r.datasets[idx+1:]...)
	return &Registry{maxFiles: r.maxFiles, datasets: next}, nil
}

// GetByID looks up a dataset
func (r *Registry) GetByID(id core.ID) (*dataset.Dataset, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return r.datasets[idx], true
}

// List returns the datasets in the order they were added
func (r *Registry) List() []*dataset.Dataset {
	return append([]*dataset.Dataset{}, r.datasets...)
}

// NameOf returns the file name of dataset id, or "" when it is not loaded
func (r *Registry) NameOf(id core.ID) string {
	if ds, ok := r.GetByID(id); ok {
		return ds.Name
	}
	return ""
}

func (r *Registry) indexOf(id core.ID) int {
	for i, ds := range r.datasets {
		if ds.ID == id {
			return i
		}
	}
	return -1
}
