package dataset

import (
	"testing"

	"sheetlens/domain/core"
	domainDataset "sheetlens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAddRelationship(t *testing.T) {
	full := domainDataset.Relationship{SourceFileID: "a", SourceKey: "id", TargetFileID: "b", TargetKey: "a_id"}
	assert.True(t, CanAddRelationship(full))

	tests := []struct {
		name   string
		mutate func(*domainDataset.Relationship)
	}{
		{"no source file", func(r *domainDataset.Relationship) { r.SourceFileID = "" }},
		{"no source key", func(r *domainDataset.Relationship) { r.SourceKey = " " }},
		{"no target file", func(r *domainDataset.Relationship) { r.TargetFileID = "" }},
		{"no target key", func(r *domainDataset.Relationship) { r.TargetKey = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := full
			tt.mutate(&candidate)
			assert.False(t, CanAddRelationship(candidate))

			set := NewRelationshipSet()
			after, err := set.AddRelationship(candidate)
			assert.ErrorIs(t, err, core.ErrValidation)
			assert.Equal(t, 0, after.Len())
		})
	}
}

func TestAddRelationship_SelfReference(t *testing.T) {
	candidate := domainDataset.Relationship{SourceFileID: "a", TargetFileID: "a", SourceKey: "id", TargetKey: "parentId"}

	set, err := NewRelationshipSet().AddRelationship(candidate)
	require.NoError(t, err)
	assert.Equal(t, []domainDataset.Relationship{candidate}, set.List())
}

func TestAddRelationship_AppendsLastAndKeepsDuplicates(t *testing.T) {
	first := domainDataset.Relationship{SourceFileID: "a", SourceKey: "id", TargetFileID: "b", TargetKey: "a_id"}
	second := domainDataset.Relationship{SourceFileID: "b", SourceKey: "code", TargetFileID: "c", TargetKey: "code"}

	s1, err := NewRelationshipSet().AddRelationship(first)
	require.NoError(t, err)
	s2, err := s1.AddRelationship(second)
	require.NoError(t, err)
	s3, err := s2.AddRelationship(first)
	require.NoError(t, err)

	list := s3.List()
	require.Len(t, list, 3)
	assert.Equal(t, first, list[len(list)-1])
	assert.Equal(t, 2, s2.Len(), "earlier sets are unchanged")
}

func TestRelationshipSet_Views(t *testing.T) {
	reg, err := NewRegistry(3).AddDatasets(named("a", "orders.xlsx"), named("b", "customers.xls"))
	require.NoError(t, err)

	set, err := NewRelationshipSet().AddRelationship(domainDataset.Relationship{
		SourceFileID: "a", SourceKey: "CustomerID", TargetFileID: "b", TargetKey: "ID",
	})
	require.NoError(t, err)

	views := set.Views(reg)
	require.Len(t, views, 1)
	assert.Equal(t, "orders.xlsx (CustomerID) -> customers.xls (ID)", views[0].String())

	reg, err = reg.RemoveDataset("b")
	require.NoError(t, err)
	views = set.Views(reg)
	assert.Equal(t, "", views[0].TargetName, "removed files resolve to an empty name")
	assert.Equal(t, 1, set.Len())
}
