package service

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/repo"
)

// ExportService assembles a flat export of every workflow and assistant.
type ExportService struct {
	workflows  repo.WorkflowRepo
	assistants repo.AssistantRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(workflows repo.WorkflowRepo, assistants repo.AssistantRepo) *ExportService {
	return &ExportService{workflows: workflows, assistants: assistants}
}

// Export returns one ExportRow per entity: all workflows first, then all
// assistants, each oldest first. Both tables are read concurrently.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	var (
		workflows  []domain.Workflow
		assistants []domain.Assistant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workflows, err = s.workflows.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		assistants, err = s.assistants.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(workflows)+len(assistants))
	for _, w := range workflows {
		row := exportRow(domain.KindWorkflow, w.Entity)
		row.Trigger = w.Trigger
		rows = append(rows, row)
	}
	for _, a := range assistants {
		row := exportRow(domain.KindAssistant, a.Entity)
		row.Model = a.Model
		rows = append(rows, row)
	}
	return rows, nil
}

func exportRow(kind domain.Kind, e domain.Entity) domain.ExportRow {
	tags := slices.Clone(e.Tags)
	if tags == nil {
		tags = []string{}
	}
	return domain.ExportRow{
		Kind:        kind,
		ID:          e.ID.String(),
		Name:        e.Name,
		Version:     e.Version,
		Status:      e.Status,
		Owner:       e.Owner,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Tags:        tags,
	}
}
