package versions

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/pkordes/flowdeck/internal/domain"
)

// Family is every entity sharing one name, ordered newest version first.
type Family[T domain.Taggable] struct {
	Name     string
	Versions []T
}

// Latest returns the default version: the numerically greatest one.
func (f *Family[T]) Latest() T {
	return f.Versions[0]
}

// Find returns the member whose version label is version.
func (f *Family[T]) Find(version string) (T, bool) {
	for _, v := range f.Versions {
		if v.Meta().Version == version {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Labels returns the version labels, newest first.
func (f *Family[T]) Labels() []string {
	out := make([]string, len(f.Versions))
	for i, v := range f.Versions {
		out[i] = v.Meta().Version
	}
	return out
}

// CreatedAt returns the most recent created_at among the members.
func (f *Family[T]) CreatedAt() time.Time {
	var latest time.Time
	for _, v := range f.Versions {
		if c := v.Meta().CreatedAt; c.After(latest) {
			latest = c
		}
	}
	return latest
}

// Group collapses items into families keyed by exact name. Families are
// ordered by their most recent created_at, newest first, then by name.
func Group[T domain.Taggable](items []T) []*Family[T] {
	byName := make(map[string]*Family[T])
	var families []*Family[T]
	for _, it := range items {
		name := it.Meta().Name
		f, ok := byName[name]
		if !ok {
			f = &Family[T]{Name: name}
			byName[name] = f
			families = append(families, f)
		}
		f.Versions = append(f.Versions, it)
	}

	for _, f := range families {
		slices.SortStableFunc(f.Versions, func(a, b T) int {
			if c := Compare(b.Meta().Version, a.Meta().Version); c != 0 {
				return c
			}
			return b.Meta().CreatedAt.Compare(a.Meta().CreatedAt)
		})
	}
	slices.SortStableFunc(families, func(a, b *Family[T]) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return families
}

// Grid is the grouped view plus the version the user picked per family.
// It is not safe for concurrent use.
type Grid[T domain.Taggable] struct {
	families []*Family[T]
	selected map[string]string
}

// NewGrid groups items with every family showing its latest version.
func NewGrid[T domain.Taggable](items []T) *Grid[T] {
	return &Grid[T]{families: Group(items), selected: map[string]string{}}
}

// Families returns the families in display order.
func (g *Grid[T]) Families() []*Family[T] {
	return g.families
}

// Select pins family name to version.
func (g *Grid[T]) Select(name, version string) error {
	f := g.family(name)
	if f == nil {
		return fmt.Errorf("versions.Grid.Select: family %q: %w", name, domain.ErrNotFound)
	}
	if _, ok := f.Find(version); !ok {
		return fmt.Errorf("versions.Grid.Select: %s@%s: %w", name, version, domain.ErrNotFound)
	}
	g.selected[name] = version
	return nil
}

// Current returns the version shown for family name: the selected one if it
// still exists, otherwise the latest.
func (g *Grid[T]) Current(name string) (T, bool) {
	f := g.family(name)
	if f == nil {
		var zero T
		return zero, false
	}
	if v, ok := g.selected[name]; ok {
		if it, ok := f.Find(v); ok {
			return it, true
		}
	}
	return f.Latest(), true
}

// Refresh regroups after the underlying list changed. Selections pointing at
// a version that no longer exists are dropped so the family falls back to
// its latest version.
func (g *Grid[T]) Refresh(items []T) {
	g.families = Group(items)
	for name, v := range g.selected {
		f := g.family(name)
		if f == nil {
			delete(g.selected, name)
			continue
		}
		if _, ok := f.Find(v); !ok {
			delete(g.selected, name)
		}
	}
}

func (g *Grid[T]) family(name string) *Family[T] {
	for _, f := range g.families {
		if f.Name == name {
			return f
		}
	}
	return nil
}
