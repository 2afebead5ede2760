package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sheetlens/domain/dataset"
	"sheetlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	r, err := parseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = parseDateRange("2024-02-01", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, 9999, r.To.Year())

	_, err = parseDateRange("", "March")
	assert.Error(t, err)
}

func TestMimeTypeFor(t *testing.T) {
	assert.Equal(t, dataset.MimeTypeXLSX, mimeTypeFor("a/b/Sales.XLSX"))
	assert.Equal(t, dataset.MimeTypeXLS, mimeTypeFor("legacy.xls"))
	assert.Equal(t, "application/octet-stream", mimeTypeFor("notes.csv"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	content, err := testkit.SalesWorkbook().Bytes()
	require.NoError(t, err)
	path := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	ws, loaded, err := loadFiles(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "sales.xlsx", loaded[0].Name)

	rows, err := ws.Summarize(dataset.SummaryRequest{DatasetID: loaded[0].ID, GroupByField: "Region", Operation: dataset.OperationSum})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 17.0, rows[0].Value)
}

func TestSampleCommand(t *testing.T) {
	dir := t.TempDir()
	cmd := newSampleCmd()
	cmd.SetArgs([]string{"--dir", dir, "--orders", "10", "--customers", "3"})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"orders.xlsx", "customers.xlsx"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	content, err := testkit.SalesWorkbook().Bytes()
	require.NoError(t, err)
	path := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cmd := newClassifyCmd()
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	csv := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(csv, []byte("a,b\n1,2\n"), 0o644))
	cmd = newClassifyCmd()
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{csv})
	assert.Error(t, cmd.Execute())
}
