package console_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/console"
	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

var errBackend = errors.New("backend down")

// ---- fake TagBackend -------------------------------------------------------

type fakeTags struct {
	mu    sync.Mutex
	names []string
	calls []string
	fail  bool
}

func (f *fakeTags) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.fail {
		return errBackend
	}
	return nil
}

func (f *fakeTags) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeTags) ListTags(context.Context) ([]domain.Tag, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	out := make([]domain.Tag, len(f.names))
	for i, n := range f.names {
		out[i] = domain.Tag{ID: uuid.New(), Name: n, Position: int64(i + 1)}
	}
	return out, nil
}

func (f *fakeTags) CreateTag(_ context.Context, name string) (bool, error) {
	if err := f.record("create " + name); err != nil {
		return false, err
	}
	return true, nil
}

func (f *fakeTags) RenameTag(_ context.Context, oldName, newName string) (domain.Cascade, error) {
	if err := f.record("rename " + oldName + " " + newName); err != nil {
		return domain.Cascade{}, err
	}
	return domain.Cascade{}, nil
}

func (f *fakeTags) DeleteTag(_ context.Context, name string) (domain.Cascade, error) {
	if err := f.record("delete " + name); err != nil {
		return domain.Cascade{}, err
	}
	return domain.Cascade{}, nil
}

var _ console.TagBackend = (*fakeTags)(nil)

// ---- fake Remote -----------------------------------------------------------

// fakeRemote serves a fixed list and echoes mutations back the way the
// service would. It ignores the list filter, so every filter must also be
// applied locally.
type fakeRemote[T tagging.Record[T]] struct {
	mu      sync.Mutex
	items   []T
	fail    bool
	filters []domain.ListFilter

	// When hold is set, List snapshots the items, signals started and
	// answers only once hold is closed.
	hold    chan struct{}
	started chan struct{}
}

func (f *fakeRemote[T]) find(id uuid.UUID) (T, error) {
	for _, it := range f.items {
		if it.Meta().ID == id {
			return it, nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (f *fakeRemote[T]) List(_ context.Context, lf domain.ListFilter) ([]T, error) {
	f.mu.Lock()
	f.filters = append(f.filters, lf)
	fail, items := f.fail, slices.Clone(f.items)
	hold, started := f.hold, f.started
	f.hold = nil
	f.mu.Unlock()

	if hold != nil {
		close(started)
		<-hold
	}
	if fail {
		return nil, errBackend
	}
	return items, nil
}

// stall makes the next List call block until the returned release is called.
// The returned channel is closed once that call is in flight.
func (f *fakeRemote[T]) stall() (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hold, begun := make(chan struct{}), make(chan struct{})
	f.hold, f.started = hold, begun
	return begun, func() { close(hold) }
}

func (f *fakeRemote[T]) Update(_ context.Context, id uuid.UUID, patch domain.EntityPatch) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.fail {
		return zero, errBackend
	}
	it, err := f.find(id)
	if err != nil {
		return zero, err
	}
	if patch.Tags != nil {
		it = it.WithTags(*patch.Tags)
	}
	return it, nil
}

func (f *fakeRemote[T]) SetStatus(_ context.Context, id uuid.UUID, status domain.Status) (T, error) {
	return f.mutate(id, func(e *domain.Entity) { e.Status = status })
}

func (f *fakeRemote[T]) TransferOwner(_ context.Context, id uuid.UUID, owner string) (T, error) {
	return f.mutate(id, func(e *domain.Entity) { e.Owner = owner })
}

func (f *fakeRemote[T]) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errBackend
	}
	_, err := f.find(id)
	return err
}

func (f *fakeRemote[T]) mutate(id uuid.UUID, fn func(*domain.Entity)) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.fail {
		return zero, errBackend
	}
	it, err := f.find(id)
	if err != nil {
		return zero, err
	}
	c := it.WithTags(slices.Clone(it.Meta().Tags))
	fn(c.Meta())
	return c, nil
}

var _ console.Remote[*domain.Workflow] = (*fakeRemote[*domain.Workflow])(nil)
