package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/repo"
)

// ---- mockWorkflowRepo ------------------------------------------------------

// mockWorkflowRepo is a hand-written test double for repo.WorkflowRepo.
// Unset functions panic so a test fails loudly on an unexpected call.
type mockWorkflowRepo struct {
	create       func(ctx context.Context, w domain.Workflow) (domain.Workflow, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Workflow, error)
	list         func(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error)
	listAll      func(ctx context.Context) ([]domain.Workflow, error)
	update       func(ctx context.Context, w domain.Workflow) (domain.Workflow, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	renameTag    func(ctx context.Context, oldName, newName string) (int64, error)
	removeTag    func(ctx context.Context, name string) (int64, error)
	namesWithTag func(ctx context.Context, tag string) ([]string, error)
}

func (m *mockWorkflowRepo) Create(ctx context.Context, w domain.Workflow) (domain.Workflow, error) {
	return m.create(ctx, w)
}
func (m *mockWorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Workflow, error) {
	return m.getByID(ctx, id)
}
func (m *mockWorkflowRepo) List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error) {
	return m.list(ctx, f, s, p)
}
func (m *mockWorkflowRepo) ListAll(ctx context.Context) ([]domain.Workflow, error) {
	return m.listAll(ctx)
}
func (m *mockWorkflowRepo) Update(ctx context.Context, w domain.Workflow) (domain.Workflow, error) {
	return m.update(ctx, w)
}
func (m *mockWorkflowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockWorkflowRepo) RenameTag(ctx context.Context, oldName, newName string) (int64, error) {
	return m.renameTag(ctx, oldName, newName)
}
func (m *mockWorkflowRepo) RemoveTag(ctx context.Context, name string) (int64, error) {
	return m.removeTag(ctx, name)
}
func (m *mockWorkflowRepo) NamesWithTag(ctx context.Context, tag string) ([]string, error) {
	return m.namesWithTag(ctx, tag)
}

// compile-time check: mockWorkflowRepo must satisfy repo.WorkflowRepo.
var _ repo.WorkflowRepo = (*mockWorkflowRepo)(nil)

// ---- mockAssistantRepo -----------------------------------------------------

type mockAssistantRepo struct {
	create       func(ctx context.Context, a domain.Assistant) (domain.Assistant, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Assistant, error)
	list         func(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error)
	listAll      func(ctx context.Context) ([]domain.Assistant, error)
	update       func(ctx context.Context, a domain.Assistant) (domain.Assistant, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	renameTag    func(ctx context.Context, oldName, newName string) (int64, error)
	removeTag    func(ctx context.Context, name string) (int64, error)
	namesWithTag func(ctx context.Context, tag string) ([]string, error)
}

func (m *mockAssistantRepo) Create(ctx context.Context, a domain.Assistant) (domain.Assistant, error) {
	return m.create(ctx, a)
}
func (m *mockAssistantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Assistant, error) {
	return m.getByID(ctx, id)
}
func (m *mockAssistantRepo) List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error) {
	return m.list(ctx, f, s, p)
}
func (m *mockAssistantRepo) ListAll(ctx context.Context) ([]domain.Assistant, error) {
	return m.listAll(ctx)
}
func (m *mockAssistantRepo) Update(ctx context.Context, a domain.Assistant) (domain.Assistant, error) {
	return m.update(ctx, a)
}
func (m *mockAssistantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockAssistantRepo) RenameTag(ctx context.Context, oldName, newName string) (int64, error) {
	return m.renameTag(ctx, oldName, newName)
}
func (m *mockAssistantRepo) RemoveTag(ctx context.Context, name string) (int64, error) {
	return m.removeTag(ctx, name)
}
func (m *mockAssistantRepo) NamesWithTag(ctx context.Context, tag string) ([]string, error) {
	return m.namesWithTag(ctx, tag)
}

var _ repo.AssistantRepo = (*mockAssistantRepo)(nil)

// ---- mockTagRepo -----------------------------------------------------------

type mockTagRepo struct {
	create    func(ctx context.Context, name string) (domain.Tag, bool, error)
	ensureAll func(ctx context.Context, names []string) error
	getByName func(ctx context.Context, name string) (domain.Tag, error)
	list      func(ctx context.Context, q string) ([]domain.Tag, error)
	listPaged func(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	rename    func(ctx context.Context, oldName, newName string) (domain.Tag, error)
	delete    func(ctx context.Context, name string) (bool, error)
}

func (m *mockTagRepo) Create(ctx context.Context, name string) (domain.Tag, bool, error) {
	return m.create(ctx, name)
}

// EnsureAll is a no-op when unset; most entity tests do not care about it.
func (m *mockTagRepo) EnsureAll(ctx context.Context, names []string) error {
	if m.ensureAll == nil {
		return nil
	}
	return m.ensureAll(ctx, names)
}
func (m *mockTagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	return m.getByName(ctx, name)
}
func (m *mockTagRepo) List(ctx context.Context, q string) ([]domain.Tag, error) {
	return m.list(ctx, q)
}
func (m *mockTagRepo) ListPaged(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	return m.listPaged(ctx, q, p)
}
func (m *mockTagRepo) Rename(ctx context.Context, oldName, newName string) (domain.Tag, error) {
	return m.rename(ctx, oldName, newName)
}
func (m *mockTagRepo) Delete(ctx context.Context, name string) (bool, error) {
	return m.delete(ctx, name)
}

var _ repo.TagRepo = (*mockTagRepo)(nil)

// ---- fakeUnitOfWork --------------------------------------------------------

// fakeUnitOfWork runs fn against the mock repos with no transaction. It
// records how many units ran and whether the last one failed, which is what
// a real UnitOfWork turns into commit or rollback.
type fakeUnitOfWork struct {
	repos      repo.Repos
	calls      int
	rolledBack bool
}

func newFakeUnitOfWork(w *mockWorkflowRepo, a *mockAssistantRepo, t *mockTagRepo) *fakeUnitOfWork {
	if w == nil {
		w = &mockWorkflowRepo{}
	}
	if a == nil {
		a = &mockAssistantRepo{}
	}
	if t == nil {
		t = &mockTagRepo{}
	}
	return &fakeUnitOfWork{repos: repo.Repos{Workflows: w, Assistants: a, Tags: t}}
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(r repo.Repos) error) error {
	u.calls++
	err := fn(u.repos)
	u.rolledBack = err != nil
	return err
}

var _ repo.UnitOfWork = (*fakeUnitOfWork)(nil)
