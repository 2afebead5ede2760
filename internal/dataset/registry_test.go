package dataset

import (
	"testing"

	"sheetlens/domain/core"
	domainDataset "sheetlens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(id, name string) *domainDataset.Dataset {
	return &domainDataset.Dataset{ID: core.ID(id), Name: name, Columns: []string{"id"}}
}

func TestRegistry_AddAndGet(t *testing.T) {
	empty := NewRegistry(0)
	assert.Equal(t, DefaultMaxFiles, empty.MaxFiles())

	reg, err := empty.AddDatasets(named("a", "a.xlsx"), named("b", "b.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 0, empty.Len(), "original registry is unchanged")

	ds, ok := reg.GetByID("b")
	require.True(t, ok)
	assert.Equal(t, "b.xlsx", ds.Name)

	_, ok = reg.GetByID("zzz")
	assert.False(t, ok)

	list := reg.List()
	assert.Equal(t, core.ID("a"), list[0].ID)
	list[0] = nil
	assert.NotNil(t, reg.List()[0], "List returns a copy")
}

func TestRegistry_CapacityIsAtomic(t *testing.T) {
	reg, err := NewRegistry(2).AddDatasets(named("a", "a.xlsx"), named("b", "b.xlsx"))
	require.NoError(t, err)

	after, err := reg.AddDatasets(named("c", "c.xlsx"))
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)
	assert.Equal(t, 2, after.Len())
	assert.Equal(t, 2, reg.Len())

	_, err = NewRegistry(3).AddDatasets(named("a", ""), named("b", ""), named("c", ""), named("d", ""))
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)

	full, err := NewRegistry(3).AddDatasets(named("a", ""), named("b", ""), named("c", ""))
	require.NoError(t, err)
	assert.False(t, full.CanAccept(1))
	assert.True(t, full.CanAccept(0))
}

func TestRegistry_Remove(t *testing.T) {
	reg, err := NewRegistry(3).AddDatasets(named("a", "a.xlsx"), named("b", "b.xlsx"), named("c", "c.xlsx"))
	require.NoError(t, err)

	next, err := reg.RemoveDataset("b")
	require.NoError(t, err)
	assert.Equal(t, 2, next.Len())
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, core.ID("c"), next.List()[1].ID)
	assert.Equal(t, "", next.NameOf("b"))

	same, err := next.RemoveDataset("b")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, next, same)

	again, err := next.AddDatasets(named("d", "d.xlsx"))
	require.NoError(t, err, "removing frees capacity")
	assert.Equal(t, 3, again.Len())
}
