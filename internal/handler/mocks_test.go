package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/handler"
	"github.com/pkordes/flowdeck/internal/tagging"
)

// ---- mock WorkflowServicer --------------------------------------------------

type mockWorkflowServicer struct {
	create        func(ctx context.Context, w domain.Workflow) (domain.Workflow, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Workflow, error)
	list          func(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error)
	update        func(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Workflow, error)
	setStatus     func(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Workflow, error)
	transferOwner func(ctx context.Context, id uuid.UUID, owner string) (domain.Workflow, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockWorkflowServicer) Create(ctx context.Context, w domain.Workflow) (domain.Workflow, error) {
	return m.create(ctx, w)
}

func (m *mockWorkflowServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Workflow, error) {
	return m.getByID(ctx, id)
}

func (m *mockWorkflowServicer) List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error) {
	return m.list(ctx, f, s, p)
}

func (m *mockWorkflowServicer) Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Workflow, error) {
	return m.update(ctx, id, patch)
}

func (m *mockWorkflowServicer) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Workflow, error) {
	return m.setStatus(ctx, id, status)
}

func (m *mockWorkflowServicer) TransferOwner(ctx context.Context, id uuid.UUID, owner string) (domain.Workflow, error) {
	return m.transferOwner(ctx, id, owner)
}

func (m *mockWorkflowServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.WorkflowServicer = (*mockWorkflowServicer)(nil)

// ---- mock AssistantServicer -------------------------------------------------

type mockAssistantServicer struct {
	create        func(ctx context.Context, a domain.Assistant) (domain.Assistant, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Assistant, error)
	list          func(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error)
	update        func(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Assistant, error)
	setStatus     func(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Assistant, error)
	transferOwner func(ctx context.Context, id uuid.UUID, owner string) (domain.Assistant, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAssistantServicer) Create(ctx context.Context, a domain.Assistant) (domain.Assistant, error) {
	return m.create(ctx, a)
}

func (m *mockAssistantServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Assistant, error) {
	return m.getByID(ctx, id)
}

func (m *mockAssistantServicer) List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error) {
	return m.list(ctx, f, s, p)
}

func (m *mockAssistantServicer) Update(ctx context.Context, id uuid.UUID, patch domain.EntityPatch) (domain.Assistant, error) {
	return m.update(ctx, id, patch)
}

func (m *mockAssistantServicer) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Assistant, error) {
	return m.setStatus(ctx, id, status)
}

func (m *mockAssistantServicer) TransferOwner(ctx context.Context, id uuid.UUID, owner string) (domain.Assistant, error) {
	return m.transferOwner(ctx, id, owner)
}

func (m *mockAssistantServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.AssistantServicer = (*mockAssistantServicer)(nil)

// ---- mock TagServicer -------------------------------------------------------

type mockTagServicer struct {
	create    func(ctx context.Context, name string) (domain.Tag, bool, error)
	listPaged func(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	rename    func(ctx context.Context, oldName, newName string) (domain.Tag, domain.Cascade, error)
	delete    func(ctx context.Context, name string) (domain.Cascade, error)
	usage     func(ctx context.Context, name string) (tagging.Usage, error)
}

func (m *mockTagServicer) Create(ctx context.Context, name string) (domain.Tag, bool, error) {
	return m.create(ctx, name)
}

func (m *mockTagServicer) ListPaged(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	return m.listPaged(ctx, q, p)
}

func (m *mockTagServicer) Rename(ctx context.Context, oldName, newName string) (domain.Tag, domain.Cascade, error) {
	return m.rename(ctx, oldName, newName)
}

func (m *mockTagServicer) Delete(ctx context.Context, name string) (domain.Cascade, error) {
	return m.delete(ctx, name)
}

func (m *mockTagServicer) Usage(ctx context.Context, name string) (tagging.Usage, error) {
	return m.usage(ctx, name)
}

// compile-time check: mockTagServicer must satisfy handler.TagServicer.
var _ handler.TagServicer = (*mockTagServicer)(nil)

// ---- mock ExportServicer ----------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)
