package domain

import "strings"

// ListFilter narrows a list of entities. Zero values mean "no filter".
type ListFilter struct {
	// Search matches name or description, case-insensitively.
	Search string
	// Status keeps only entities in this publish state.
	Status Status
	// Tag keeps only entities whose assignment contains this tag exactly.
	Tag string
}

// IsZero reports whether f filters nothing.
func (f ListFilter) IsZero() bool {
	return f == ListFilter{}
}

// Matches reports whether e passes every dimension of f.
func (f ListFilter) Matches(e *Entity) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}
	return true
}

// SortField names an orderable entity column.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByVersion   SortField = "version"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByCreatedAt, SortByUpdatedAt, SortByVersion:
		return true
	}
	return false
}

// Sort is a field plus direction. The zero value sorts by newest first.
type Sort struct {
	Field SortField
	Desc  bool
}

// DefaultSort orders by created_at descending.
var DefaultSort = Sort{Field: SortByCreatedAt, Desc: true}
