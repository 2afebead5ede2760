package dataset

import (
	"strings"

	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
)

// RelationshipSet is the append-only list of declared relationships.
// Like Registry it is immutable; AddRelationship returns a new set.
type RelationshipSet struct {
	items []dataset.Relationship
}

// NewRelationshipSet creates an empty set
func NewRelationshipSet() *RelationshipSet {
	return &RelationshipSet{items: []dataset.Relationship{}}
}

// CanAddRelationship reports whether all four fields of candidate are present.
// Self-relationships and mismatched key types are accepted.
func CanAddRelationship(candidate dataset.Relationship) bool {
	return !candidate.SourceFileID.IsEmpty() &&
		!candidate.TargetFileID.IsEmpty() &&
		strings.TrimSpace(candidate.SourceKey) != "" &&
		strings.TrimSpace(candidate.TargetKey) != ""
}

// AddRelationship returns a set with candidate appended, or a validation error
// naming the first missing field
func (s *RelationshipSet) AddRelationship(candidate dataset.Relationship) (*RelationshipSet, error) {
	if !CanAddRelationship(candidate) {
		return s, core.NewValidationError(missingRelationshipField(candidate), "required")
	}

	next := make([]dataset.Relationship, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, candidate)
	return &RelationshipSet{items: next}, nil
}

// List returns the relationships in the order they were declared
func (s *RelationshipSet) List() []dataset.Relationship {
	return append([]dataset.Relationship{}, s.items...)
}

// Len returns the number of relationships
func (s *RelationshipSet) Len() int {
	return len(s.items)
}

// Views resolves file names through the registry for display.
// Files no longer loaded resolve to an empty name.
func (s *RelationshipSet) Views(registry *Registry) []dataset.RelationshipView {
	views := make([]dataset.RelationshipView, 0, len(s.items))
	for _, rel := range s.items {
		views = append(views, dataset.RelationshipView{
			Relationship: rel,
			SourceName:   registry.NameOf(rel.SourceFileID),
			TargetName:   registry.NameOf(rel.TargetFileID),
		})
	}
	return views
}

func missingRelationshipField(candidate dataset.Relationship) string {
	switch {
	case candidate.SourceFileID.IsEmpty():
		return "source_file_id"
	case strings.TrimSpace(candidate.SourceKey) == "":
		return "source_key"
	case candidate.TargetFileID.IsEmpty():
		return "target_file_id"
	}
	return "target_key"
}
