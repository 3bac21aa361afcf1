package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/service"
)

func TestExportService_Export_WorkflowsThenAssistants(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	wf := domain.Workflow{
		Entity:  domain.Entity{ID: uuid.New(), Name: "Invoice sync", Version: "1.0.0", Status: domain.StatusPublished, Tags: []string{"finance", "ops"}, CreatedAt: created},
		Trigger: "schedule",
	}
	as := domain.Assistant{
		Entity: domain.Entity{ID: uuid.New(), Name: "Support bot", Version: "2.0.0", Status: domain.StatusDraft},
		Model:  "gpt-4o",
	}

	svc := service.NewExportService(
		&mockWorkflowRepo{listAll: func(context.Context) ([]domain.Workflow, error) { return []domain.Workflow{wf}, nil }},
		&mockAssistantRepo{listAll: func(context.Context) ([]domain.Assistant, error) { return []domain.Assistant{as}, nil }},
	)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.KindWorkflow, rows[0].Kind)
	assert.Equal(t, wf.ID.String(), rows[0].ID)
	assert.Equal(t, "schedule", rows[0].Trigger)
	assert.Empty(t, rows[0].Model)
	assert.Equal(t, []string{"finance", "ops"}, rows[0].Tags)
	assert.Equal(t, created, rows[0].CreatedAt)

	assert.Equal(t, domain.KindAssistant, rows[1].Kind)
	assert.Equal(t, "gpt-4o", rows[1].Model)
	assert.NotNil(t, rows[1].Tags)
	assert.Empty(t, rows[1].Tags)
}

func TestExportService_Export_Empty(t *testing.T) {
	svc := service.NewExportService(
		&mockWorkflowRepo{listAll: func(context.Context) ([]domain.Workflow, error) { return []domain.Workflow{}, nil }},
		&mockAssistantRepo{listAll: func(context.Context) ([]domain.Assistant, error) { return nil, nil }},
	)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_RepoError(t *testing.T) {
	boom := errors.New("db exploded")
	svc := service.NewExportService(
		&mockWorkflowRepo{listAll: func(context.Context) ([]domain.Workflow, error) { return nil, nil }},
		&mockAssistantRepo{listAll: func(context.Context) ([]domain.Assistant, error) { return nil, boom }},
	)

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, boom)
}
