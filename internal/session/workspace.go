package session

import (
	"context"
	"fmt"
	"sync"

	"sheetlens/domain/core"
	domainDataset "sheetlens/domain/dataset"
	"sheetlens/internal"
	"sheetlens/internal/analysis"
	"sheetlens/internal/dataset"
	"sheetlens/internal/profiling"
	"sheetlens/ports"
)

// Workspace owns the session state: the current dataset registry and the
// declared relationships. Both are immutable values; the workspace swaps
// pointers under a lock so readers always see a complete snapshot.
type Workspace struct {
	mu            sync.RWMutex
	registry      *dataset.Registry
	relationships *dataset.RelationshipSet

	intake     *dataset.Intake
	summarizer *analysis.Summarizer
	profiler   ports.ColumnProfiler
	logger     *internal.Logger
}

// NewWorkspace creates an empty workspace holding at most maxFiles datasets
func NewWorkspace(intake *dataset.Intake, maxFiles int) *Workspace {
	return &Workspace{
		registry:      dataset.NewRegistry(maxFiles),
		relationships: dataset.NewRelationshipSet(),
		intake:        intake,
		summarizer:    analysis.NewSummarizer(nil),
		logger:        internal.DefaultLogger,
	}
}

// SetProfiler installs the column profiler used by Profile
func (w *Workspace) SetProfiler(p ports.ColumnProfiler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profiler = p
}

// Snapshot returns the current registry and relationship set
func (w *Workspace) Snapshot() (*dataset.Registry, *dataset.RelationshipSet) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry, w.relationships
}

// Upload parses a batch and commits it to the registry. Nothing is committed
// unless every file parses and the batch fits.
func (w *Workspace) Upload(ctx context.Context, uploads []domainDataset.Upload) ([]*domainDataset.Dataset, error) {
	registry, _ := w.Snapshot()
	if !registry.CanAccept(len(uploads)) {
		return nil, core.NewCapacityError(registry.Len(), len(uploads), registry.MaxFiles())
	}

	datasets, err := w.intake.Parse(ctx, uploads)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.registry.AddDatasets(datasets...)
	if err != nil {
		return nil, err
	}
	w.registry = next
	w.logger.Info("[Workspace] loaded %d files (%d/%d)", len(datasets), next.Len(), next.MaxFiles())
	return datasets, nil
}

// Remove drops a dataset. Relationships that mention it are kept.
func (w *Workspace) Remove(id core.ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := w.registry.RemoveDataset(id)
	if err != nil {
		return err
	}
	w.registry = next
	w.logger.Info("[Workspace] removed dataset %s", id)
	return nil
}

// Datasets lists the loaded datasets
func (w *Workspace) Datasets() []*domainDataset.Dataset {
	registry, _ := w.Snapshot()
	return registry.List()
}

// Dataset looks up a loaded dataset
func (w *Workspace) Dataset(id core.ID) (*domainDataset.Dataset, error) {
	registry, _ := w.Snapshot()
	ds, ok := registry.GetByID(id)
	if !ok {
		return nil, core.NewNotFoundError("dataset", id)
	}
	return ds, nil
}

// Classify returns the numeric and date-like columns of a dataset
func (w *Workspace) Classify(id core.ID) (domainDataset.ColumnClassification, error) {
	ds, err := w.Dataset(id)
	if err != nil {
		return domainDataset.ColumnClassification{}, err
	}
	return profiling.ClassifyColumns(ds), nil
}

// Profile describes the contents of each column of a dataset
func (w *Workspace) Profile(id core.ID) ([]domainDataset.ColumnProfile, error) {
	ds, err := w.Dataset(id)
	if err != nil {
		return nil, err
	}
	w.mu.RLock()
	profiler := w.profiler
	w.mu.RUnlock()
	if profiler == nil {
		return nil, fmt.Errorf("column profiling is not configured")
	}
	return profiler.Profile(ds), nil
}

// Overview returns headline counts for a dataset
func (w *Workspace) Overview(id core.ID) (domainDataset.Overview, error) {
	ds, err := w.Dataset(id)
	if err != nil {
		return domainDataset.Overview{}, err
	}
	return analysis.Overview(ds), nil
}

// Preview returns the first n rows of a dataset
func (w *Workspace) Preview(id core.ID, n int) (domainDataset.Preview, error) {
	ds, err := w.Dataset(id)
	if err != nil {
		return domainDataset.Preview{}, err
	}
	return analysis.Preview(ds, n), nil
}

// Summarize runs a summary request against the dataset it names
func (w *Workspace) Summarize(req domainDataset.SummaryRequest) ([]domainDataset.SummaryRow, error) {
	ds, err := w.Dataset(req.DatasetID)
	if err != nil {
		return nil, err
	}
	return w.summarizer.Summarize(ds, req)
}

// AddRelationship appends a relationship and returns the full updated list.
// Both files must be loaded and each key must be one of its file's columns.
func (w *Workspace) AddRelationship(candidate domainDataset.Relationship) ([]domainDataset.Relationship, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dataset.CanAddRelationship(candidate) {
		if err := checkEndpoint(w.registry, candidate.SourceFileID, candidate.SourceKey, "source_key"); err != nil {
			return nil, err
		}
		if err := checkEndpoint(w.registry, candidate.TargetFileID, candidate.TargetKey, "target_key"); err != nil {
			return nil, err
		}
	}

	next, err := w.relationships.AddRelationship(candidate)
	if err != nil {
		return nil, err
	}
	w.relationships = next
	w.logger.Debug("[Workspace] relationship %s.%s -> %s.%s added",
		candidate.SourceFileID, candidate.SourceKey, candidate.TargetFileID, candidate.TargetKey)
	return next.List(), nil
}

// Relationships lists the declared relationships with file names resolved
func (w *Workspace) Relationships() []domainDataset.RelationshipView {
	registry, relationships := w.Snapshot()
	return relationships.Views(registry)
}

func checkEndpoint(registry *dataset.Registry, id core.ID, key, keyField string) error {
	ds, ok := registry.GetByID(id)
	if !ok {
		return core.NewNotFoundError("dataset", id)
	}
	if !ds.HasColumn(key) {
		return core.NewValidationError(keyField, fmt.Sprintf("%q is not a column of %s", key, ds.Name))
	}
	return nil
}
