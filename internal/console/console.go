// Package console holds the management console's in-memory state: the tag
// catalog, one pipeline-backed collection per entity kind, and the callbacks
// the UI invokes. Every mutation goes to the service first and is applied
// locally only after the service accepted it, so a failed call leaves the
// console exactly as it was.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

// TagBackend is the remote half of the tag vocabulary.
type TagBackend interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	CreateTag(ctx context.Context, name string) (bool, error)
	RenameTag(ctx context.Context, oldName, newName string) (domain.Cascade, error)
	DeleteTag(ctx context.Context, name string) (domain.Cascade, error)
}

// Options tunes a Console. Zero values pick defaults.
type Options struct {
	Debounce   time.Duration
	RecentTags int
	Logger     *slog.Logger
	// OnError receives failures that have no caller to return to, such as
	// debounced search fetches.
	OnError func(error)
}

// Console is the application state shared by every console view.
type Console struct {
	catalog *tagging.Catalog
	tags    TagBackend
	log     *slog.Logger
	topN    int

	Workflows  *Desk[*domain.Workflow]
	Assistants *Desk[*domain.Assistant]
}

// New wires a Console to its backends. Collections are attached workflows
// first, so usage lists workflows before assistants.
func New(tags TagBackend, workflows Remote[*domain.Workflow], assistants Remote[*domain.Assistant], opts Options) *Console {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	catalog := tagging.NewCatalog(nil)
	return &Console{
		catalog:    catalog,
		tags:       tags,
		log:        opts.Logger,
		topN:       opts.RecentTags,
		Workflows:  newDesk(domain.KindWorkflow, catalog, workflows, opts),
		Assistants: newDesk(domain.KindAssistant, catalog, assistants, opts),
	}
}

// Load fetches the vocabulary and both collections concurrently.
func (c *Console) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tags, err := c.tags.ListTags(ctx)
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}
		c.catalog.ResetTags(names)
		return nil
	})
	g.Go(func() error {
		if err := c.Workflows.pipe.Load(ctx); err != nil {
			return fmt.Errorf("load workflows: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.Assistants.pipe.Load(ctx); err != nil {
			return fmt.Errorf("load assistants: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("console.Console.Load: %w", err)
	}
	c.log.Debug("console loaded",
		"tags", len(c.catalog.Tags()),
		"workflows", len(c.Workflows.items.Items()),
		"assistants", len(c.Assistants.items.Items()),
	)
	return nil
}

// Close stops both pipelines.
func (c *Console) Close() {
	c.Workflows.pipe.Close()
	c.Assistants.pipe.Close()
}

// Tags returns the vocabulary in registry order.
func (c *Console) Tags() []string {
	return c.catalog.Tags()
}

// OnCreateTag registers name with the service and then locally. It reports
// false, without calling the service, for an empty or already registered
// name, and false when the service call fails.
func (c *Console) OnCreateTag(ctx context.Context, name string) bool {
	name = tagging.Normalize(name)
	if name == "" || c.catalog.HasTag(name) {
		return false
	}
	if _, err := c.tags.CreateTag(ctx, name); err != nil {
		c.log.WarnContext(ctx, "create tag failed", "tag", name, "error", err)
		return false
	}
	return c.catalog.Create(name)
}

// OnRenameTag renames a tag on the service and then cascades locally.
// The request is checked locally first so obviously invalid renames never
// reach the service.
func (c *Console) OnRenameTag(ctx context.Context, oldName, newName string) error {
	oldName = tagging.Normalize(oldName)
	newName, err := tagging.ValidateRename(oldName, newName)
	if err != nil {
		return fmt.Errorf("console.Console.OnRenameTag: %w", err)
	}
	if !c.catalog.HasTag(oldName) {
		return fmt.Errorf("console.Console.OnRenameTag: tag %q: %w", oldName, domain.ErrNotFound)
	}
	if c.catalog.HasTag(newName) {
		return fmt.Errorf("console.Console.OnRenameTag: tag %q: %w", newName, domain.ErrConflict)
	}

	if _, err := c.tags.RenameTag(ctx, oldName, newName); err != nil {
		return fmt.Errorf("console.Console.OnRenameTag: %w", err)
	}
	c.invalidate()
	if err := c.catalog.Rename(oldName, newName); err != nil {
		return fmt.Errorf("console.Console.OnRenameTag: %w", err)
	}
	return nil
}

// OnDeleteTag deletes a tag on the service and then from every local entity.
// Callers are expected to have confirmed with the user.
func (c *Console) OnDeleteTag(ctx context.Context, name string) error {
	name = tagging.Normalize(name)
	if _, err := c.tags.DeleteTag(ctx, name); err != nil {
		return fmt.Errorf("console.Console.OnDeleteTag: %w", err)
	}
	c.invalidate()
	changed := c.catalog.Delete(name)
	c.log.DebugContext(ctx, "tag deleted", "tag", name, "entities", changed)
	return nil
}

// invalidate drops list fetches that may predate a tag cascade, so their
// results cannot bring back the old name.
func (c *Console) invalidate() {
	c.Workflows.pipe.Invalidate()
	c.Assistants.pipe.Invalidate()
}

// Usage lists the entities holding name, workflows first.
func (c *Console) Usage(name string) tagging.Usage {
	return c.catalog.Usage(name)
}

// TagSelector returns the tag input for an entity whose assignment is
// selected. Inline creation goes through OnCreateTag; onChange receives the
// selection after every toggle.
func (c *Console) TagSelector(ctx context.Context, selected []string, onChange func([]string)) *tagging.Selector {
	return tagging.NewSelector(tagging.SelectorConfig{
		Selected:   selected,
		Vocabulary: c.catalog.Tags(),
		TopN:       c.topN,
		OnCreate:   func(name string) bool { return c.OnCreateTag(ctx, name) },
		OnChange:   onChange,
	})
}
