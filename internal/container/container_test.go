package container

import (
	"context"
	"testing"

	"sheetlens/internal/config"
	"sheetlens/internal/testkit"

	domainDataset "sheetlens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Workspace: config.WorkspaceConfig{
			MaxFiles:         2,
			ParseConcurrency: 1,
			MaxUploadBytes:   1 << 20,
			PreviewRows:      3,
		},
		Log: config.LogConfig{Level: "ERROR"},
	}
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNew_WiresWorkspace(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	registry, _ := c.Workspace.Snapshot()
	assert.Equal(t, 2, registry.MaxFiles())

	opts := c.UIOptions()
	assert.Equal(t, int64(1<<20), opts.MaxUploadBytes)
	assert.Equal(t, 3, opts.PreviewRows)

	loaded, err := c.Workspace.Upload(context.Background(), []domainDataset.Upload{testkit.SalesWorkbook().MustUpload("sales.xlsx")})
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	profiles, err := c.Workspace.Profile(loaded[0].ID)
	require.NoError(t, err)
	assert.Len(t, profiles, 3)

	assert.NoError(t, c.Shutdown(context.Background()))
}
