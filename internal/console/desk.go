package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/pipeline"
	"github.com/pkordes/flowdeck/internal/tagging"
	"github.com/pkordes/flowdeck/internal/versions"
)

// Remote is the service side of one entity collection.
type Remote[T any] interface {
	List(ctx context.Context, f domain.ListFilter) ([]T, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (T, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (T, error)
	TransferOwner(ctx context.Context, id uuid.UUID, owner string) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Desk is the console state for one entity kind: the collection attached to
// the catalog, the pipeline that fills it, and the grouped grid view.
type Desk[T tagging.Record[T]] struct {
	kind   domain.Kind
	remote Remote[T]
	items  *tagging.Collection[T]
	pipe   *pipeline.Pipeline[T]

	gridMu sync.Mutex
	grid   *versions.Grid[T]
}

func newDesk[T tagging.Record[T]](kind domain.Kind, catalog *tagging.Catalog, remote Remote[T], opts Options) *Desk[T] {
	items := tagging.Attach[T](catalog)
	d := &Desk[T]{
		kind:   kind,
		remote: remote,
		items:  items,
	}
	d.pipe = pipeline.New(pipeline.Fetcher[T](remote.List), items.Set, pipeline.Options{
		Debounce: opts.Debounce,
		Logger:   opts.Logger.With("kind", string(kind)),
		OnError:  opts.OnError,
	})
	return d
}

// Kind names the collection.
func (d *Desk[T]) Kind() domain.Kind { return d.kind }

// Pipeline exposes the filter and sort controls.
func (d *Desk[T]) Pipeline() *pipeline.Pipeline[T] { return d.pipe }

// Items returns the displayed list: the collection filtered and sorted with
// the pipeline's active settings.
func (d *Desk[T]) Items() []T {
	return d.pipe.View(d.items.Items())
}

// Get returns the entity with id from the local collection.
func (d *Desk[T]) Get(id uuid.UUID) (T, bool) {
	return d.items.Get(id)
}

// Grid returns the version-grouped view of Items. Per-family version
// selections survive across calls; a selection whose version disappeared
// falls back to the family's latest version.
func (d *Desk[T]) Grid() *versions.Grid[T] {
	items := d.Items()
	d.gridMu.Lock()
	defer d.gridMu.Unlock()
	if d.grid == nil {
		d.grid = versions.NewGrid(items)
	} else {
		d.grid.Refresh(items)
	}
	return d.grid
}

// Resolve finds an entity by id string or exact name. A name shared by
// several versions resolves to the latest one.
func (d *Desk[T]) Resolve(ref string) (T, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if it, ok := d.items.Get(id); ok {
			return it, nil
		}
	}
	for _, f := range versions.Group(d.items.Items()) {
		if f.Name == ref {
			return f.Latest(), nil
		}
	}
	var zero T
	return zero, fmt.Errorf("console.Desk.Resolve: %s %q: %w", d.kind, ref, domain.ErrNotFound)
}

// SetTags replaces an entity's assignment. Unknown tags are registered by the
// service and, once it accepted the update, locally.
func (d *Desk[T]) SetTags(ctx context.Context, id uuid.UUID, tags []string) (T, error) {
	tags = tagging.Dedupe(tags)
	updated, err := d.remote.Update(ctx, id, domain.EntityPatch{Tags: &tags})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("console.Desk.SetTags: %w", err)
	}
	d.items.Put(updated)
	return updated, nil
}

// Publish marks an entity published.
func (d *Desk[T]) Publish(ctx context.Context, id uuid.UUID) (T, error) {
	return d.apply(ctx, "Publish", func(ctx context.Context) (T, error) {
		return d.remote.SetStatus(ctx, id, domain.StatusPublished)
	})
}

// Unpublish returns an entity to draft.
func (d *Desk[T]) Unpublish(ctx context.Context, id uuid.UUID) (T, error) {
	return d.apply(ctx, "Unpublish", func(ctx context.Context) (T, error) {
		return d.remote.SetStatus(ctx, id, domain.StatusDraft)
	})
}

// Share transfers ownership.
func (d *Desk[T]) Share(ctx context.Context, id uuid.UUID, owner string) (T, error) {
	return d.apply(ctx, "Share", func(ctx context.Context) (T, error) {
		return d.remote.TransferOwner(ctx, id, owner)
	})
}

// Delete removes an entity from the service and then locally.
func (d *Desk[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := d.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("console.Desk.Delete: %w", err)
	}
	d.items.Remove(id)
	return nil
}

func (d *Desk[T]) apply(ctx context.Context, op string, call func(context.Context) (T, error)) (T, error) {
	updated, err := call(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("console.Desk.%s: %w", op, err)
	}
	d.items.Put(updated)
	return updated, nil
}
