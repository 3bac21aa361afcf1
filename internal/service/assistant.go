package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/repo"
)

// AssistantService implements business logic for Assistant operations.
type AssistantService struct {
	uow        repo.UnitOfWork
	assistants repo.AssistantRepo
}

// NewAssistantService constructs an AssistantService.
func NewAssistantService(uow repo.UnitOfWork, assistants repo.AssistantRepo) *AssistantService {
	return &AssistantService{uow: uow, assistants: assistants}
}

// Create validates a, registers its tags, then persists it.
func (s *AssistantService) Create(ctx context.Context, a domain.Assistant) (domain.Assistant, error) {
	if err := prepareAssistant(&a); err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.Create: %w", err)
	}

	var result domain.Assistant
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		if err := r.Tags.EnsureAll(ctx, a.Tags); err != nil {
			return err
		}
		created, err := r.Assistants.Create(ctx, a)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.Create: %w", err)
	}
	return result, nil
}

func (s *AssistantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Assistant, error) {
	result, err := s.assistants.GetByID(ctx, id)
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.GetByID: %w", err)
	}
	return result, nil
}

func (s *AssistantService) List(ctx context.Context, f domain.ListFilter, sort domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error) {
	sort, err := validateListQuery(f, sort)
	if err != nil {
		return nil, 0, fmt.Errorf("service.AssistantService.List: %w", err)
	}
	assistants, total, err := s.assistants.List(ctx, f, sort, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.AssistantService.List: %w", err)
	}
	if assistants == nil {
		assistants = []domain.Assistant{}
	}
	return assistants, total, nil
}

func (s *AssistantService) Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Assistant, error) {
	result, err := s.modify(ctx, id, func(a *domain.Assistant) error {
		applyEntityPatch(&a.Entity, patch)
		if patch.Model != nil {
			a.Model = *patch.Model
		}
		if patch.Instructions != nil {
			a.Instructions = *patch.Instructions
		}
		if patch.Tools != nil {
			a.Tools = *patch.Tools
		}
		return prepareAssistant(a)
	})
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.Update: %w", err)
	}
	return result, nil
}

func (s *AssistantService) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Assistant, error) {
	if !status.Valid() {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.SetStatus: %w: unknown status %q", domain.ErrValidation, status)
	}
	result, err := s.modify(ctx, id, func(a *domain.Assistant) error {
		a.Status = status
		return nil
	})
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.SetStatus: %w", err)
	}
	return result, nil
}

func (s *AssistantService) TransferOwner(ctx context.Context, id uuid.UUID, owner string) (domain.Assistant, error) {
	owner, err := validateOwner(owner)
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.TransferOwner: %w", err)
	}
	result, err := s.modify(ctx, id, func(a *domain.Assistant) error {
		a.Owner = owner
		return nil
	})
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("service.AssistantService.TransferOwner: %w", err)
	}
	return result, nil
}

func (s *AssistantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.assistants.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.AssistantService.Delete: %w", err)
	}
	return nil
}

func (s *AssistantService) modify(ctx context.Context, id uuid.UUID, mutate func(*domain.Assistant) error) (domain.Assistant, error) {
	var result domain.Assistant
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		a, err := r.Assistants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(&a); err != nil {
			return err
		}
		if err := r.Tags.EnsureAll(ctx, a.Tags); err != nil {
			return err
		}
		updated, err := r.Assistants.Update(ctx, a)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// prepareAssistant runs the shared entity rules; model is required and the
// tool list is trimmed like a tag list.
func prepareAssistant(a *domain.Assistant) error {
	if err := prepareEntity(&a.Entity); err != nil {
		return err
	}
	a.Model = strings.TrimSpace(a.Model)
	if a.Model == "" {
		return fmt.Errorf("%w: model is required", domain.ErrValidation)
	}
	tools := make([]string, 0, len(a.Tools))
	for _, t := range a.Tools {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}
	a.Tools = tools
	return nil
}
