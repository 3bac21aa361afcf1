package service

import (
	"context"
	"fmt"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/repo"
	"github.com/pkordes/flowdeck/internal/tagging"
)

// TagService implements the tag vocabulary and its cascade.
// Rename and delete touch the registry and both entity tables in one
// transaction: either every assignment follows the registry or nothing changes.
type TagService struct {
	uow        repo.UnitOfWork
	tags       repo.TagRepo
	workflows  repo.WorkflowRepo
	assistants repo.AssistantRepo
}

// NewTagService constructs a TagService. The repos serve reads; writes go
// through uow.
func NewTagService(uow repo.UnitOfWork, tags repo.TagRepo, workflows repo.WorkflowRepo, assistants repo.AssistantRepo) *TagService {
	return &TagService{uow: uow, tags: tags, workflows: workflows, assistants: assistants}
}

// Create registers name. An empty (after trimming) or already-registered name
// is not an error: created is false and nothing changes.
func (s *TagService) Create(ctx context.Context, name string) (tag domain.Tag, created bool, err error) {
	name = tagging.Normalize(name)
	if name == "" {
		return domain.Tag{}, false, nil
	}
	tag, created, err = s.tags.Create(ctx, name)
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("service.TagService.Create: %w", err)
	}
	return tag, created, nil
}

// List returns the vocabulary in registry order, optionally narrowed to names
// containing q case-insensitively. Always returns a non-nil slice.
func (s *TagService) List(ctx context.Context, q string) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx, tagging.Normalize(q))
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

// ListPaged is List with pagination and a total count.
func (s *TagService) ListPaged(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	tags, total, err := s.tags.ListPaged(ctx, tagging.Normalize(q), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TagService.ListPaged: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, total, nil
}

// Rename renames oldName to newName everywhere.
// Returns domain.ErrValidation for an empty or unchanged new name,
// domain.ErrNotFound if oldName is not registered and domain.ErrConflict if
// newName belongs to another tag. Tags are never merged.
func (s *TagService) Rename(ctx context.Context, oldName, newName string) (domain.Tag, domain.Cascade, error) {
	oldName = tagging.Normalize(oldName)
	newName, err := tagging.ValidateRename(oldName, newName)
	if err != nil {
		return domain.Tag{}, domain.Cascade{}, fmt.Errorf("service.TagService.Rename: %w", err)
	}

	var (
		tag     domain.Tag
		changed domain.Cascade
	)
	err = s.uow.Do(ctx, func(r repo.Repos) error {
		var err error
		if tag, err = r.Tags.Rename(ctx, oldName, newName); err != nil {
			return err
		}
		if changed.Workflows, err = r.Workflows.RenameTag(ctx, oldName, newName); err != nil {
			return err
		}
		if changed.Assistants, err = r.Assistants.RenameTag(ctx, oldName, newName); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Tag{}, domain.Cascade{}, fmt.Errorf("service.TagService.Rename: %w", err)
	}
	return tag, changed, nil
}

// Delete removes name from the registry and from every assignment.
// Deleting an unknown tag is a no-op that still strips stray assignments.
func (s *TagService) Delete(ctx context.Context, name string) (domain.Cascade, error) {
	name = tagging.Normalize(name)
	if name == "" {
		return domain.Cascade{}, nil
	}

	var changed domain.Cascade
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		var err error
		if _, err = r.Tags.Delete(ctx, name); err != nil {
			return err
		}
		if changed.Workflows, err = r.Workflows.RemoveTag(ctx, name); err != nil {
			return err
		}
		if changed.Assistants, err = r.Assistants.RemoveTag(ctx, name); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Cascade{}, fmt.Errorf("service.TagService.Delete: %w", err)
	}
	return changed, nil
}

// Usage lists the workflows then assistants holding name.
func (s *TagService) Usage(ctx context.Context, name string) (tagging.Usage, error) {
	name = tagging.Normalize(name)
	usage := tagging.Usage{Tag: name, Entities: []string{}}
	if name == "" {
		return usage, nil
	}

	workflows, err := s.workflows.NamesWithTag(ctx, name)
	if err != nil {
		return tagging.Usage{}, fmt.Errorf("service.TagService.Usage: %w", err)
	}
	assistants, err := s.assistants.NamesWithTag(ctx, name)
	if err != nil {
		return tagging.Usage{}, fmt.Errorf("service.TagService.Usage: %w", err)
	}
	usage.Entities = append(append(usage.Entities, workflows...), assistants...)
	return usage, nil
}
