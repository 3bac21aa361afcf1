package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/flowdeck/internal/domain"
)

// WorkflowRepo defines the persistence operations for Workflows.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type WorkflowRepo interface {
	// Create inserts a new workflow and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrConflict if the name/version pair is taken.
	Create(ctx context.Context, w domain.Workflow) (domain.Workflow, error)

	// GetByID retrieves a single workflow by its UUID primary key.
	// Returns domain.ErrNotFound if no workflow with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Workflow, error)

	// List returns one page of workflows matching f, ordered by s, and the
	// total number of matches.
	List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error)

	// ListAll returns every workflow ordered by created_at.
	ListAll(ctx context.Context) ([]domain.Workflow, error)

	// Update overwrites the mutable fields of an existing workflow and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, w domain.Workflow) (domain.Workflow, error)

	// Delete removes a workflow by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// RenameTag replaces oldName with newName in every assignment and returns
	// the number of workflows changed.
	RenameTag(ctx context.Context, oldName, newName string) (int64, error)

	// RemoveTag strips name from every assignment and returns the number of
	// workflows changed.
	RemoveTag(ctx context.Context, name string) (int64, error)

	// NamesWithTag returns the names of workflows holding tag.
	NamesWithTag(ctx context.Context, tag string) ([]string, error)
}

// pgWorkflowRepo is the Postgres implementation of WorkflowRepo.
type pgWorkflowRepo struct {
	db db
}

// NewWorkflowRepo constructs a WorkflowRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewWorkflowRepo(db db) WorkflowRepo {
	return &pgWorkflowRepo{db: db}
}

const workflowColumns = `id, name, description, version, status, owner, tags,
		trigger, definition, created_at, updated_at`

// Create inserts a new workflow row and returns the full persisted record.
func (r *pgWorkflowRepo) Create(ctx context.Context, w domain.Workflow) (domain.Workflow, error) {
	q := `
		INSERT INTO workflows (name, description, version, status, owner, tags, trigger, definition)
		VALUES (@name, @description, @version, @status, @owner, @tags, @trigger, @definition)
		RETURNING ` + workflowColumns

	row := r.db.QueryRow(ctx, q, workflowArgs(w))
	result, err := scanWorkflow(row)
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("repo.WorkflowRepo.Create: %w", mapError(err))
	}
	return result, nil
}

// GetByID retrieves a workflow by primary key.
func (r *pgWorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Workflow, error) {
	q := `SELECT ` + workflowColumns + ` FROM workflows WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanWorkflow(row)
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("repo.WorkflowRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

// List returns a filtered, sorted page of workflows and the total match count.
func (r *pgWorkflowRepo) List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Workflow, int64, error) {
	args := listArgs(f, p)

	total, err := countRows(ctx, r.db, "workflows", args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.WorkflowRepo.List: count: %w", err)
	}

	q := `SELECT ` + workflowColumns + ` FROM workflows` + listWhere + `
		` + orderBy(s) + `
		LIMIT @limit OFFSET @offset`
	workflows, err := r.query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.WorkflowRepo.List: %w", err)
	}
	return workflows, total, nil
}

// ListAll returns every workflow, oldest first.
func (r *pgWorkflowRepo) ListAll(ctx context.Context) ([]domain.Workflow, error) {
	q := `SELECT ` + workflowColumns + ` FROM workflows ORDER BY created_at, id`
	workflows, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.WorkflowRepo.ListAll: %w", err)
	}
	return workflows, nil
}

// Update overwrites the mutable fields of a workflow and returns the updated record.
func (r *pgWorkflowRepo) Update(ctx context.Context, w domain.Workflow) (domain.Workflow, error) {
	q := `
		UPDATE workflows
		SET name        = @name,
		    description = @description,
		    version     = @version,
		    status      = @status,
		    owner       = @owner,
		    tags        = @tags,
		    trigger     = @trigger,
		    definition  = @definition,
		    updated_at  = clock_timestamp()
		WHERE id = @id
		RETURNING ` + workflowColumns

	args := workflowArgs(w)
	args["id"] = w.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanWorkflow(row)
	if err != nil {
		return domain.Workflow{}, fmt.Errorf("repo.WorkflowRepo.Update: %w", mapError(err))
	}
	return result, nil
}

// Delete removes a workflow by primary key.
func (r *pgWorkflowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM workflows WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.WorkflowRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.WorkflowRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgWorkflowRepo) RenameTag(ctx context.Context, oldName, newName string) (int64, error) {
	n, err := renameTagIn(ctx, r.db, "workflows", oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("repo.WorkflowRepo.RenameTag: %w", err)
	}
	return n, nil
}

func (r *pgWorkflowRepo) RemoveTag(ctx context.Context, name string) (int64, error) {
	n, err := removeTagFrom(ctx, r.db, "workflows", name)
	if err != nil {
		return 0, fmt.Errorf("repo.WorkflowRepo.RemoveTag: %w", err)
	}
	return n, nil
}

func (r *pgWorkflowRepo) NamesWithTag(ctx context.Context, tag string) ([]string, error) {
	names, err := namesWithTag(ctx, r.db, "workflows", tag)
	if err != nil {
		return nil, fmt.Errorf("repo.WorkflowRepo.NamesWithTag: %w", err)
	}
	return names, nil
}

func (r *pgWorkflowRepo) query(ctx context.Context, q string, args ...any) ([]domain.Workflow, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workflows := []domain.Workflow{}
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		workflows = append(workflows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return workflows, nil
}

func workflowArgs(w domain.Workflow) pgx.NamedArgs {
	definition := []byte(w.Definition)
	if len(definition) == 0 {
		definition = []byte("{}")
	}
	return pgx.NamedArgs{
		"name":        w.Name,
		"description": w.Description,
		"version":     w.Version,
		"status":      statusArg(w.Status),
		"owner":       w.Owner,
		"tags":        tagsArg(w.Tags),
		"trigger":     w.Trigger,
		"definition":  definition,
	}
}

// scanWorkflow maps a single database row into a domain.Workflow.
func scanWorkflow(s scanner) (domain.Workflow, error) {
	var (
		w          domain.Workflow
		id         pgtype.UUID
		status     string
		definition []byte
	)
	err := s.Scan(&id, &w.Name, &w.Description, &w.Version, &status, &w.Owner, &w.Tags,
		&w.Trigger, &definition, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return domain.Workflow{}, err
	}
	w.ID = uuid.UUID(id.Bytes)
	w.Status = domain.Status(status)
	w.Definition = definition
	return w, nil
}
