package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/flowdeck/internal/domain"
)

// DefaultDebounce is the delay between the last search edit and the fetch.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher loads entities from the remote service. The service may ignore any
// part of the filter.
type Fetcher[T domain.Taggable] func(ctx context.Context, f domain.ListFilter) ([]T, error)

// Options tunes a Pipeline. Zero values pick defaults.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
	// OnError receives failures of debounced fetches, which have no caller
	// to return to.
	OnError func(error)
}

// Pipeline sequences fetches for one entity list and holds the active
// filter and sort. Accepted fetch results are handed to the sink; the
// displayed list is View applied to whatever the sink stored.
type Pipeline[T domain.Taggable] struct {
	fetch    Fetcher[T]
	sink     func([]T)
	debounce time.Duration
	log      *slog.Logger
	onError  func(error)

	root context.Context
	stop context.CancelFunc

	mu     sync.Mutex
	filter domain.ListFilter
	sort   domain.Sort
	seq    uint64
	cancel context.CancelFunc
	timer  *time.Timer
}

// New returns a Pipeline that fetches with fetch and stores results with sink.
func New[T domain.Taggable](fetch Fetcher[T], sink func([]T), opts Options) *Pipeline[T] {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	root, stop := context.WithCancel(context.Background())
	return &Pipeline[T]{
		fetch:    fetch,
		sink:     sink,
		debounce: opts.Debounce,
		log:      opts.Logger,
		onError:  opts.OnError,
		root:     root,
		stop:     stop,
		sort:     domain.DefaultSort,
	}
}

// Load performs the initial fetch. It ignores the filter so the first
// render starts from the complete list.
func (p *Pipeline[T]) Load(ctx context.Context) error {
	return p.run(ctx, domain.ListFilter{})
}

// Filter returns the active filter.
func (p *Pipeline[T]) Filter() domain.ListFilter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// Sort returns the active sort.
func (p *Pipeline[T]) Sort() domain.Sort {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sort
}

// SetSearch updates the search text immediately for local filtering and
// schedules a re-fetch after the debounce delay. Further edits within the
// delay restart it.
func (p *Pipeline[T]) SetSearch(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.filter.Search = text
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.debounced)
}

// SetStatus changes the status filter and re-fetches right away.
func (p *Pipeline[T]) SetStatus(ctx context.Context, status domain.Status) error {
	p.mu.Lock()
	p.filter.Status = status
	f := p.filter
	p.mu.Unlock()
	return p.run(ctx, f)
}

// SetTag changes the tag filter and re-fetches right away.
func (p *Pipeline[T]) SetTag(ctx context.Context, tag string) error {
	p.mu.Lock()
	p.filter.Tag = tag
	f := p.filter
	p.mu.Unlock()
	return p.run(ctx, f)
}

// SetSort changes the order. It never fetches.
func (p *Pipeline[T]) SetSort(s domain.Sort) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sort = s
}

// View filters and sorts items with the active settings.
func (p *Pipeline[T]) View(items []T) []T {
	p.mu.Lock()
	f, s := p.filter, p.sort
	p.mu.Unlock()
	return Apply(items, f, s)
}

// Invalidate drops the result of any in-flight fetch. Callers use it after
// changing remote state the fetch may not have seen. A pending debounced
// fetch still runs, since it starts after the change.
func (p *Pipeline[T]) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Close cancels any pending or in-flight fetch.
func (p *Pipeline[T]) Close() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.mu.Unlock()
	p.stop()
}

func (p *Pipeline[T]) debounced() {
	err := p.run(p.root, p.Filter())
	if err != nil && p.onError != nil {
		p.onError(err)
	}
}

// run fetches with f. Starting a fetch cancels the previous one, and a
// result is only handed to the sink if no newer fetch started meanwhile.
// A superseded fetch returns nil.
func (p *Pipeline[T]) run(ctx context.Context, f domain.ListFilter) error {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	items, err := p.fetch(ctx, f)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		p.log.Debug("dropping superseded fetch", "seq", seq, "latest", p.seq)
		return nil
	}
	if err != nil {
		return err
	}
	p.sink(items)
	return nil
}
