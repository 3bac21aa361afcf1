// Package tagging maintains the shared tag vocabulary and keeps every
// workflow and assistant assignment consistent with it.
//
// A Registry is the ordered vocabulary. A Catalog owns one Registry plus any
// number of entity collections and applies create/rename/delete as single
// atomic cascades across all of them. A Selector is the per-entity tag input
// state: toggling, suggestion filtering and inline creation.
//
// Tag equality is exact after trimming surrounding whitespace. Only
// suggestion filtering is case-insensitive.
package tagging

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkordes/flowdeck/internal/domain"
)

// Normalize returns the canonical form of a tag name: surrounding whitespace
// removed, case preserved.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// ValidateRename checks a rename request and returns the normalized new name.
// It rejects an empty new name and a rename to the current name.
func ValidateRename(oldName, newName string) (string, error) {
	newName = Normalize(newName)
	if newName == "" {
		return "", fmt.Errorf("%w: new tag name is required", domain.ErrValidation)
	}
	if newName == Normalize(oldName) {
		return "", fmt.Errorf("%w: new tag name is unchanged", domain.ErrValidation)
	}
	return newName, nil
}

// Registry is an ordered, duplicate-free list of tag names.
// It is not safe for concurrent use; Catalog serializes access to the one it owns.
type Registry struct {
	names []string
}

// NewRegistry returns a registry seeded with names, in order.
// Names are normalized; empty names and later duplicates are dropped.
func NewRegistry(names ...string) *Registry {
	r := &Registry{names: make([]string, 0, len(names))}
	for _, n := range names {
		r.Add(n)
	}
	return r
}

// List returns a copy of the vocabulary in registry order.
func (r *Registry) List() []string {
	return slices.Clone(r.names)
}

// Len returns the number of tags.
func (r *Registry) Len() int { return len(r.names) }

// Contains reports whether name (normalized) is registered.
func (r *Registry) Contains(name string) bool {
	return slices.Contains(r.names, Normalize(name))
}

// Add appends name if it is non-empty and not yet registered.
// It reports whether the registry grew.
func (r *Registry) Add(name string) bool {
	name = Normalize(name)
	if name == "" || slices.Contains(r.names, name) {
		return false
	}
	r.names = append(r.names, name)
	return true
}

// Rename replaces oldName with newName in place, keeping its position.
func (r *Registry) Rename(oldName, newName string) error {
	newName, err := ValidateRename(oldName, newName)
	if err != nil {
		return err
	}
	i := slices.Index(r.names, Normalize(oldName))
	if i < 0 {
		return fmt.Errorf("tag %q: %w", oldName, domain.ErrNotFound)
	}
	if slices.Contains(r.names, newName) {
		return fmt.Errorf("tag %q: %w", newName, domain.ErrConflict)
	}
	r.names[i] = newName
	return nil
}

// Remove deletes name and reports whether it was present.
func (r *Registry) Remove(name string) bool {
	i := slices.Index(r.names, Normalize(name))
	if i < 0 {
		return false
	}
	r.names = slices.Delete(r.names, i, i+1)
	return true
}
