package analysis

import (
	"testing"

	"sheetlens/domain/datareadiness/ingestion"
	"sheetlens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	got := Overview(datedDataset())
	assert.Equal(t, dataset.Overview{RowCount: 4, ColumnCount: 3, NumericColumnCount: 1}, got)
	assert.Equal(t, dataset.Overview{}, Overview(nil))
}

func TestPreview_Truncates(t *testing.T) {
	ds := &dataset.Dataset{Columns: []string{"n", "label"}}
	for i := 0; i < 8; i++ {
		ds.Rows = append(ds.Rows, dataset.Record{"n": num(float64(i))})
	}
	ds.Rows[1]["label"] = ingestion.NewBooleanValue(true)

	p := Preview(ds, 0)
	require.Len(t, p.Rows, DefaultPreviewRows)
	assert.Equal(t, 8, p.Total)
	assert.True(t, p.Truncated)
	assert.Equal(t, "Showing 5 of 8 rows", p.Caption())
	assert.Equal(t, []string{"0", ""}, p.Rows[0])
	assert.Equal(t, []string{"1", "true"}, p.Rows[1])
}

func TestPreview_ShortDataset(t *testing.T) {
	p := Preview(regionDataset(), 10)
	assert.Len(t, p.Rows, 3)
	assert.False(t, p.Truncated)
	assert.Empty(t, p.Caption())
	assert.Equal(t, []string{"region", "amt"}, p.Columns)

	empty := Preview(nil, 5)
	assert.Empty(t, empty.Rows)
}

func TestOperationsFor(t *testing.T) {
	c := dataset.ColumnClassification{Numeric: []string{"amt"}}
	assert.Equal(t, []dataset.Operation{dataset.OperationCount, dataset.OperationSum, dataset.OperationAverage}, OperationsFor(c, "amt"))
	assert.Equal(t, []dataset.Operation{dataset.OperationCount}, OperationsFor(c, "region"))
}

func TestGroupableFields(t *testing.T) {
	ds := regionDataset()
	fields := GroupableFields(ds)
	assert.Equal(t, []string{"region", "amt"}, fields)

	fields[0] = "changed"
	assert.Equal(t, "region", ds.Columns[0], "returned slice is a copy")
}
