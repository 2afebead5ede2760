package session

import (
	"context"
	"sync"
	"testing"

	"sheetlens/adapters/datareadiness"
	"sheetlens/adapters/excel"
	"sheetlens/domain/core"
	domainDataset "sheetlens/domain/dataset"
	"sheetlens/internal/dataset"
	"sheetlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(maxFiles int) *Workspace {
	reader := excel.NewWorkbookReader(excel.DefaultReaderConfig())
	return NewWorkspace(dataset.NewIntake(reader, 2), maxFiles)
}

func TestWorkspace_UploadAndSummarize(t *testing.T) {
	w := newWorkspace(3)

	loaded, err := w.Upload(context.Background(), []domainDataset.Upload{testkit.SalesWorkbook().MustUpload("sales.xlsx")})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	id := loaded[0].ID

	classification, err := w.Classify(id)
	require.NoError(t, err)
	assert.True(t, classification.IsNumeric("Amount"))
	assert.True(t, classification.IsDate("Date"))

	rows, err := w.Summarize(domainDataset.SummaryRequest{DatasetID: id, GroupByField: "Region", Operation: domainDataset.OperationSum})
	require.NoError(t, err)
	assert.Equal(t, []domainDataset.SummaryRow{{GroupKey: "East", Value: 17}, {GroupKey: "West", Value: 5}}, rows)

	overview, err := w.Overview(id)
	require.NoError(t, err)
	assert.Equal(t, 4, overview.RowCount)

	preview, err := w.Preview(id, 2)
	require.NoError(t, err)
	assert.Equal(t, "Showing 2 of 4 rows", preview.Caption())
}

func TestWorkspace_CapacityLeavesStateUnchanged(t *testing.T) {
	w := newWorkspace(2)
	ctx := context.Background()

	_, err := w.Upload(ctx, []domainDataset.Upload{
		testkit.SalesWorkbook().MustUpload("a.xlsx"),
		testkit.CustomersWorkbook().MustUpload("b.xlsx"),
	})
	require.NoError(t, err)

	_, err = w.Upload(ctx, []domainDataset.Upload{testkit.SalesWorkbook().MustUpload("c.xlsx")})
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)
	assert.Len(t, w.Datasets(), 2)
}

func TestWorkspace_FailedBatchCommitsNothing(t *testing.T) {
	w := newWorkspace(3)

	_, err := w.Upload(context.Background(), []domainDataset.Upload{
		testkit.SalesWorkbook().MustUpload("good.xlsx"),
		{Filename: "bad.xlsx", MimeType: domainDataset.MimeTypeXLSX, Content: []byte("garbage")},
	})
	assert.ErrorIs(t, err, core.ErrParseFailed)
	assert.Empty(t, w.Datasets())
}

func TestWorkspace_RelationshipsSurviveRemoval(t *testing.T) {
	w := newWorkspace(3)
	loaded, err := w.Upload(context.Background(), []domainDataset.Upload{
		testkit.SalesWorkbook().MustUpload("sales.xlsx"),
		testkit.CustomersWorkbook().MustUpload("customers.xlsx"),
	})
	require.NoError(t, err)

	candidate := domainDataset.Relationship{
		SourceFileID: loaded[0].ID, SourceKey: "Region",
		TargetFileID: loaded[1].ID, TargetKey: "Country",
	}
	list, err := w.AddRelationship(candidate)
	require.NoError(t, err)
	assert.Equal(t, candidate, list[len(list)-1])

	_, err = w.AddRelationship(domainDataset.Relationship{SourceFileID: loaded[0].ID})
	assert.ErrorIs(t, err, core.ErrValidation)

	views := w.Relationships()
	require.Len(t, views, 1)
	assert.Equal(t, "sales.xlsx (Region) -> customers.xlsx (Country)", views[0].String())

	require.NoError(t, w.Remove(loaded[1].ID))
	assert.ErrorIs(t, w.Remove(loaded[1].ID), core.ErrNotFound)

	views = w.Relationships()
	require.Len(t, views, 1)
	assert.Empty(t, views[0].TargetName)

	_, err = w.Dataset(loaded[1].ID)
	assert.True(t, core.IsNotFoundError(err))
}

func TestWorkspace_ConcurrentReaders(t *testing.T) {
	w := newWorkspace(3)
	loaded, err := w.Upload(context.Background(), []domainDataset.Upload{testkit.SalesWorkbook().MustUpload("sales.xlsx")})
	require.NoError(t, err)
	id := loaded[0].ID

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = w.Summarize(domainDataset.SummaryRequest{DatasetID: id, GroupByField: "Region", Operation: domainDataset.OperationCount})
			_, _ = w.AddRelationship(domainDataset.Relationship{SourceFileID: id, SourceKey: "Region", TargetFileID: id, TargetKey: "Date"})
			_ = w.Relationships()
		}()
	}
	wg.Wait()

	assert.Len(t, w.Relationships(), 8)
}

func TestWorkspace_Profile(t *testing.T) {
	w := newWorkspace(3)
	loaded, err := w.Upload(context.Background(), []domainDataset.Upload{testkit.SalesWorkbook().MustUpload("sales.xlsx")})
	require.NoError(t, err)
	id := loaded[0].ID

	_, err = w.Profile(id)
	assert.Error(t, err)

	w.SetProfiler(datareadiness.NewProfilerAdapter(nil))
	profiles, err := w.Profile(id)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, domainDataset.KindText, profiles[0].Kind)
	assert.Equal(t, domainDataset.KindNumeric, profiles[2].Kind)
	assert.Equal(t, 1, profiles[2].Missing)

	_, err = w.Profile(core.ID("unknown"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestWorkspace_RelationshipEndpointsMustExist(t *testing.T) {
	w := newWorkspace(3)

	_, err := w.AddRelationship(domainDataset.Relationship{SourceFileID: "nope", SourceKey: "x", TargetFileID: "ghost", TargetKey: "y"})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, w.Relationships())

	loaded, err := w.Upload(context.Background(), []domainDataset.Upload{
		testkit.SalesWorkbook().MustUpload("sales.xlsx"),
		testkit.CustomersWorkbook().MustUpload("customers.xlsx"),
	})
	require.NoError(t, err)
	sales, customers := loaded[0].ID, loaded[1].ID

	tests := []struct {
		name      string
		candidate domainDataset.Relationship
		want      error
	}{
		{"unknown target file", domainDataset.Relationship{SourceFileID: sales, SourceKey: "Region", TargetFileID: "ghost", TargetKey: "Country"}, core.ErrNotFound},
		{"source key not a column", domainDataset.Relationship{SourceFileID: sales, SourceKey: "Country", TargetFileID: customers, TargetKey: "Country"}, core.ErrValidation},
		{"target key not a column", domainDataset.Relationship{SourceFileID: sales, SourceKey: "Region", TargetFileID: customers, TargetKey: "Region"}, core.ErrValidation},
		{"missing field checked first", domainDataset.Relationship{SourceFileID: "ghost", SourceKey: "Region"}, core.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.AddRelationship(tt.candidate)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, w.Relationships())
		})
	}

	list, err := w.AddRelationship(domainDataset.Relationship{SourceFileID: sales, SourceKey: "Region", TargetFileID: customers, TargetKey: "Country"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
