package tagging

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
)

// Record is a taggable entity that can produce a copy of itself with a
// different assignment. *domain.Workflow and *domain.Assistant satisfy it.
type Record[T any] interface {
	domain.Taggable
	WithTags(tags []string) T
}

// tagSet is the type-erased view of a Collection the Catalog cascades over.
// Every method is called with the catalog lock held for writing (mutators)
// or at least for reading (queries).
type tagSet interface {
	renameTag(oldName, newName string) int
	removeTag(name string) int
	holders(name string) []string
	referenced() []string
}

// Catalog owns the tag registry and every attached entity collection.
// All mutations hold one write lock and replace collection slices wholesale,
// so readers either see the state before a cascade or after it, never between.
type Catalog struct {
	mu       sync.RWMutex
	registry *Registry
	sets     []tagSet
}

// NewCatalog returns a Catalog over registry. A nil registry starts empty.
func NewCatalog(registry *Registry) *Catalog {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Catalog{registry: registry}
}

// Tags returns the vocabulary in registry order.
func (c *Catalog) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.List()
}

// HasTag reports whether name is registered.
func (c *Catalog) HasTag(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Contains(name)
}

// ResetTags replaces the vocabulary, e.g. after reloading it from the server.
// Tags still referenced by an entity are re-registered at the end.
func (c *Catalog) ResetTags(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry = NewRegistry(names...)
	for _, s := range c.sets {
		for _, t := range s.referenced() {
			c.registry.Add(t)
		}
	}
}

// Create adds name to the vocabulary. It returns false without error for an
// empty name or a name that is already registered.
func (c *Catalog) Create(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Add(name)
}

// Rename renames a tag in the registry and in every attached collection.
// It fails with domain.ErrValidation for an empty or unchanged new name,
// domain.ErrNotFound when oldName is not registered, and domain.ErrConflict
// when newName already names another tag. Nothing changes on failure.
func (c *Catalog) Rename(oldName, newName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldName = Normalize(oldName)
	if err := c.registry.Rename(oldName, newName); err != nil {
		return fmt.Errorf("tagging.Catalog.Rename: %w", err)
	}
	newName = Normalize(newName)
	for _, s := range c.sets {
		s.renameTag(oldName, newName)
	}
	return nil
}

// Delete removes name from the registry and from every entity holding it.
// It is unconditional and idempotent. It returns the number of entities
// whose assignment changed.
func (c *Catalog) Delete(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	name = Normalize(name)
	c.registry.Remove(name)
	changed := 0
	for _, s := range c.sets {
		changed += s.removeTag(name)
	}
	return changed
}

// Usage returns the display names of every entity holding name, collection by
// collection in attach order.
func (c *Catalog) Usage(name string) Usage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name = Normalize(name)
	u := Usage{Tag: name, Entities: []string{}}
	for _, s := range c.sets {
		u.Entities = append(u.Entities, s.holders(name)...)
	}
	return u
}

// Unregistered returns tags referenced by some entity but missing from the
// registry. It is empty whenever the catalog is consistent.
func (c *Catalog) Unregistered() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	for _, s := range c.sets {
		for _, t := range s.referenced() {
			if !c.registry.Contains(t) && !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// Collection is one typed entity list attached to a Catalog.
// Items handed out by Collection are shared snapshots and must not be mutated;
// use Assign or Put to change an entity.
type Collection[T Record[T]] struct {
	catalog *Catalog
	items   []T
}

// Attach registers a new, empty collection with c.
func Attach[T Record[T]](c *Catalog) *Collection[T] {
	col := &Collection[T]{catalog: c}
	c.mu.Lock()
	c.sets = append(c.sets, col)
	c.mu.Unlock()
	return col
}

// Items returns the current entities in collection order.
func (col *Collection[T]) Items() []T {
	col.catalog.mu.RLock()
	defer col.catalog.mu.RUnlock()
	return slices.Clone(col.items)
}

// Get returns the entity with id.
func (col *Collection[T]) Get(id uuid.UUID) (T, bool) {
	col.catalog.mu.RLock()
	defer col.catalog.mu.RUnlock()
	i := col.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return col.items[i], true
}

// Set replaces the whole collection. Assignments are normalized and any tag
// not yet in the registry is registered.
func (col *Collection[T]) Set(items []T) {
	col.catalog.mu.Lock()
	defer col.catalog.mu.Unlock()

	next := make([]T, len(items))
	for i, it := range items {
		next[i] = col.admit(it)
	}
	col.items = next
}

// Put inserts item, or replaces the entity with the same ID in place.
func (col *Collection[T]) Put(item T) {
	col.catalog.mu.Lock()
	defer col.catalog.mu.Unlock()

	item = col.admit(item)
	next := slices.Clone(col.items)
	if i := col.index(item.Meta().ID); i >= 0 {
		next[i] = item
	} else {
		next = append(next, item)
	}
	col.items = next
}

// Remove drops the entity with id and reports whether it existed.
func (col *Collection[T]) Remove(id uuid.UUID) bool {
	col.catalog.mu.Lock()
	defer col.catalog.mu.Unlock()

	i := col.index(id)
	if i < 0 {
		return false
	}
	col.items = slices.Delete(slices.Clone(col.items), i, i+1)
	return true
}

// Assign replaces the tag assignment of one entity. Unknown tags are created
// in the registry first, so the catalog stays consistent.
func (col *Collection[T]) Assign(id uuid.UUID, tags []string) (T, error) {
	col.catalog.mu.Lock()
	defer col.catalog.mu.Unlock()

	i := col.index(id)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("tagging.Collection.Assign: %w", domain.ErrNotFound)
	}
	updated := col.admit(col.items[i].WithTags(tags))
	next := slices.Clone(col.items)
	next[i] = updated
	col.items = next
	return updated, nil
}

// admit normalizes item's assignment and registers its tags.
// Caller holds the write lock.
func (col *Collection[T]) admit(item T) T {
	tags := Dedupe(item.Meta().Tags)
	for _, t := range tags {
		col.catalog.registry.Add(t)
	}
	if !slices.Equal(tags, item.Meta().Tags) {
		item = item.WithTags(tags)
	}
	return item
}

func (col *Collection[T]) index(id uuid.UUID) int {
	return slices.IndexFunc(col.items, func(it T) bool { return it.Meta().ID == id })
}

func (col *Collection[T]) renameTag(oldName, newName string) int {
	changed := 0
	next := slices.Clone(col.items)
	for i, it := range next {
		tags := it.Meta().Tags
		j := slices.Index(tags, oldName)
		if j < 0 {
			continue
		}
		replaced := slices.Clone(tags)
		replaced[j] = newName
		next[i] = it.WithTags(Dedupe(replaced))
		changed++
	}
	if changed > 0 {
		col.items = next
	}
	return changed
}

func (col *Collection[T]) removeTag(name string) int {
	changed := 0
	next := slices.Clone(col.items)
	for i, it := range next {
		tags := it.Meta().Tags
		if !slices.Contains(tags, name) {
			continue
		}
		kept := slices.DeleteFunc(slices.Clone(tags), func(t string) bool { return t == name })
		next[i] = it.WithTags(kept)
		changed++
	}
	if changed > 0 {
		col.items = next
	}
	return changed
}

func (col *Collection[T]) holders(name string) []string {
	var out []string
	for _, it := range col.items {
		if slices.Contains(it.Meta().Tags, name) {
			out = append(out, it.Meta().Name)
		}
	}
	return out
}

func (col *Collection[T]) referenced() []string {
	var out []string
	for _, it := range col.items {
		out = append(out, it.Meta().Tags...)
	}
	return out
}

// Dedupe returns names normalized, with empties and repeats removed.
// The first occurrence wins, so assignment order is kept. The result is never nil.
func Dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = Normalize(n)
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
