// Package pipeline keeps a displayed entity list consistent with the user's
// search text, status and tag filters and sort order.
//
// The remote list endpoint receives the filter, but its result is filtered
// again locally because not every backend honours every dimension. Sorting is
// always local. Search edits are debounced; every fetch is sequenced so only
// the newest request's result is ever applied.
package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/versions"
)

// Apply returns the entities of items that match f, ordered by s.
// items is not modified.
func Apply[T domain.Taggable](items []T, f domain.ListFilter, s domain.Sort) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f.Matches(it.Meta()) {
			out = append(out, it)
		}
	}
	SortItems(out, s)
	return out
}

// SortItems orders items in place by s. Ties break on name, then id, so the
// order is deterministic whatever the fetch order was.
func SortItems[T domain.Taggable](items []T, s domain.Sort) {
	if !s.Field.Valid() {
		s = domain.DefaultSort
	}
	slices.SortStableFunc(items, func(a, b T) int {
		c := compareBy(a.Meta(), b.Meta(), s.Field)
		if s.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		if c := cmp.Compare(a.Meta().Name, b.Meta().Name); c != 0 {
			return c
		}
		return strings.Compare(a.Meta().ID.String(), b.Meta().ID.String())
	})
}

func compareBy(a, b *domain.Entity, field domain.SortField) int {
	switch field {
	case domain.SortByName:
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case domain.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case domain.SortByVersion:
		return versions.Compare(a.Version, b.Version)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
