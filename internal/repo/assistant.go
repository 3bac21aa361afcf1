package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/flowdeck/internal/domain"
)

// AssistantRepo defines the persistence operations for Assistants.
// It mirrors WorkflowRepo; see there for the per-method contracts.
type AssistantRepo interface {
	Create(ctx context.Context, a domain.Assistant) (domain.Assistant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Assistant, error)
	List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error)
	ListAll(ctx context.Context) ([]domain.Assistant, error)
	Update(ctx context.Context, a domain.Assistant) (domain.Assistant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RenameTag(ctx context.Context, oldName, newName string) (int64, error)
	RemoveTag(ctx context.Context, name string) (int64, error)
	NamesWithTag(ctx context.Context, tag string) ([]string, error)
}

type pgAssistantRepo struct {
	db db
}

// NewAssistantRepo constructs an AssistantRepo backed by db.
func NewAssistantRepo(db db) AssistantRepo {
	return &pgAssistantRepo{db: db}
}

const assistantColumns = `id, name, description, version, status, owner, tags,
		model, instructions, tools, created_at, updated_at`

func (r *pgAssistantRepo) Create(ctx context.Context, a domain.Assistant) (domain.Assistant, error) {
	q := `
		INSERT INTO assistants (name, description, version, status, owner, tags, model, instructions, tools)
		VALUES (@name, @description, @version, @status, @owner, @tags, @model, @instructions, @tools)
		RETURNING ` + assistantColumns

	result, err := scanAssistant(r.db.QueryRow(ctx, q, assistantArgs(a)))
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("repo.AssistantRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgAssistantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Assistant, error) {
	q := `SELECT ` + assistantColumns + ` FROM assistants WHERE id = @id`

	result, err := scanAssistant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("repo.AssistantRepo.GetByID: %w", mapError(err))
	}
	return result, nil
}

func (r *pgAssistantRepo) List(ctx context.Context, f domain.ListFilter, s domain.Sort, p domain.PaginationParams) ([]domain.Assistant, int64, error) {
	args := listArgs(f, p)

	total, err := countRows(ctx, r.db, "assistants", args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AssistantRepo.List: count: %w", err)
	}

	q := `SELECT ` + assistantColumns + ` FROM assistants` + listWhere + `
		` + orderBy(s) + `
		LIMIT @limit OFFSET @offset`
	assistants, err := r.query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.AssistantRepo.List: %w", err)
	}
	return assistants, total, nil
}

func (r *pgAssistantRepo) ListAll(ctx context.Context) ([]domain.Assistant, error) {
	q := `SELECT ` + assistantColumns + ` FROM assistants ORDER BY created_at, id`
	assistants, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AssistantRepo.ListAll: %w", err)
	}
	return assistants, nil
}

func (r *pgAssistantRepo) Update(ctx context.Context, a domain.Assistant) (domain.Assistant, error) {
	q := `
		UPDATE assistants
		SET name         = @name,
		    description  = @description,
		    version      = @version,
		    status       = @status,
		    owner        = @owner,
		    tags         = @tags,
		    model        = @model,
		    instructions = @instructions,
		    tools        = @tools,
		    updated_at   = clock_timestamp()
		WHERE id = @id
		RETURNING ` + assistantColumns

	args := assistantArgs(a)
	args["id"] = a.ID

	result, err := scanAssistant(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Assistant{}, fmt.Errorf("repo.AssistantRepo.Update: %w", mapError(err))
	}
	return result, nil
}

func (r *pgAssistantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM assistants WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.AssistantRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AssistantRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgAssistantRepo) RenameTag(ctx context.Context, oldName, newName string) (int64, error) {
	n, err := renameTagIn(ctx, r.db, "assistants", oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("repo.AssistantRepo.RenameTag: %w", err)
	}
	return n, nil
}

func (r *pgAssistantRepo) RemoveTag(ctx context.Context, name string) (int64, error) {
	n, err := removeTagFrom(ctx, r.db, "assistants", name)
	if err != nil {
		return 0, fmt.Errorf("repo.AssistantRepo.RemoveTag: %w", err)
	}
	return n, nil
}

func (r *pgAssistantRepo) NamesWithTag(ctx context.Context, tag string) ([]string, error) {
	names, err := namesWithTag(ctx, r.db, "assistants", tag)
	if err != nil {
		return nil, fmt.Errorf("repo.AssistantRepo.NamesWithTag: %w", err)
	}
	return names, nil
}

func (r *pgAssistantRepo) query(ctx context.Context, q string, args ...any) ([]domain.Assistant, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assistants := []domain.Assistant{}
	for rows.Next() {
		a, err := scanAssistant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		assistants = append(assistants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return assistants, nil
}

func assistantArgs(a domain.Assistant) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":         a.Name,
		"description":  a.Description,
		"version":      a.Version,
		"status":       statusArg(a.Status),
		"owner":        a.Owner,
		"tags":         tagsArg(a.Tags),
		"model":        a.Model,
		"instructions": a.Instructions,
		"tools":        tagsArg(a.Tools),
	}
}

func scanAssistant(s scanner) (domain.Assistant, error) {
	var (
		a      domain.Assistant
		id     pgtype.UUID
		status string
	)
	err := s.Scan(&id, &a.Name, &a.Description, &a.Version, &status, &a.Owner, &a.Tags,
		&a.Model, &a.Instructions, &a.Tools, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Assistant{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.Status = domain.Status(status)
	return a, nil
}
