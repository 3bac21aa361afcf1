package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/repo"
)

// DefaultTrigger is assigned to workflows created without a trigger.
const DefaultTrigger = "manual"

// WorkflowService implements business logic for Workflow operations.
// Reads go straight to the repo; writes that carry tags run in a unit of
// work so unknown tags are registered in the same transaction.
type WorkflowService struct {
	uow       repo.UnitOfWork
	workflows repo.WorkflowRepo
}

// NewWorkflowService constructs a WorkflowService.
func NewWorkflowService(uow repo.UnitOfWork, workflows repo.WorkflowRepo) *WorkflowService {
	return &WorkflowService{uow: uow, workflows: workflows}
}

// Create validates w, registers its tags, then persists it.
// Returns domain.ErrValidation if input violates business rules and
// domain.ErrConflict if the name/version pair is already taken.
func (s *WorkflowService) Create(ctx context.Context, w domain.Workflow) (domain.Workflow, error) {
	if err := prepareWorkflow(&w); err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.Create: %w", err)
	}

	var result domain.Workflow
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		if err := r.Tags.EnsureAll(ctx, w.Tags); err != nil {
			return err
		}
		created, err := r.Workflows.Create(ctx, w)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single workflow.
// Returns domain.ErrNotFound if no workflow with that ID exists.
func (s *WorkflowService) GetByID(ctx context.Context, id uuid.UUID) (domain.Workflow, error) {
	result, err := s.workflows.GetByID(ctx, id)
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of workflows matching f in the order given by sort,
// plus the total match count. Always returns a non-nil slice.
func (s *WorkflowService) List(ctx context.Context, f domain.ListFilter, sort domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error) {
	sort, err := validateListQuery(f, sort)
	if err != nil {
		return nil, 0, fmt.Errorf("service.WorkflowService.List: %w", err)
	}
	workflows, total, err := s.workflows.List(ctx, f, sort, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.WorkflowService.List: %w", err)
	}
	if workflows == nil {
		workflows = []domain.Workflow{}
	}
	return workflows, total, nil
}

// Update applies patch to the workflow with the given id.
// Returns domain.ErrNotFound if it does not exist and domain.ErrValidation
// if the patched workflow breaks a business rule.
func (s *WorkflowService) Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Workflow, error) {
	result, err := s.modify(ctx, id, func(w *domain.Workflow) error {
		applyEntityPatch(&w.Entity, patch)
		if patch.Trigger != nil {
			w.Trigger = *patch.Trigger
		}
		if patch.Definition != nil {
			w.Definition = json.RawMessage(patch.Definition)
		}
		return prepareWorkflow(w)
	})
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.Update: %w", err)
	}
	return result, nil
}

// SetStatus publishes or unpublishes a workflow.
func (s *WorkflowService) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Workflow, error) {
	if !status.Valid() {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.SetStatus: %w: unknown status %q", domain.ErrValidation, status)
	}
	result, err := s.modify(ctx, id, func(w *domain.Workflow) error {
		w.Status = status
		return nil
	})
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.SetStatus: %w", err)
	}
	return result, nil
}

// TransferOwner hands the workflow to owner.
func (s *WorkflowService) TransferOwner(ctx context.Context, id uuid.UUID, owner string) (domain.Workflow, error) {
	owner, err := validateOwner(owner)
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.TransferOwner: %w", err)
	}
	result, err := s.modify(ctx, id, func(w *domain.Workflow) error {
		w.Owner = owner
		return nil
	})
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("service.WorkflowService.TransferOwner: %w", err)
	}
	return result, nil
}

// Delete removes a workflow. Returns domain.ErrNotFound if it does not exist.
func (s *WorkflowService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.workflows.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.WorkflowService.Delete: %w", err)
	}
	return nil
}

// modify loads, mutates and stores a workflow in one transaction.
func (s *WorkflowService) modify(ctx context.Context, id uuid.UUID, mutate func(*domain.Workflow) error) (domain.Workflow, error) {
	var result domain.Workflow
	err := s.uow.Do(ctx, func(r repo.Repos) error {
		w, err := r.Workflows.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(&w); err != nil {
			return err
		}
		if err := r.Tags.EnsureAll(ctx, w.Tags); err != nil {
			return err
		}
		updated, err := r.Workflows.Update(ctx, w)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// prepareWorkflow runs the shared entity rules plus the workflow-only ones:
// trigger defaults to DefaultTrigger and definition must be a JSON object.
func prepareWorkflow(w *domain.Workflow) error {
	if err := prepareEntity(&w.Entity); err != nil {
		return err
	}
	w.Trigger = strings.TrimSpace(w.Trigger)
	if w.Trigger == "" {
		w.Trigger = DefaultTrigger
	}
	if len(w.Definition) == 0 {
		w.Definition = json.RawMessage(`{}`)
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(w.Definition, &obj); err != nil {
		return fmt.Errorf("%w: definition must be a JSON object", domain.ErrValidation)
	}
	return nil
}
