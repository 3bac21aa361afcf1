package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/flowdeck/internal/domain"
)

// TagRepo defines the persistence operations for the tag registry.
// Names are matched exactly; callers normalise before calling.
type TagRepo interface {
	// Create registers name. created is false, with no error, when the name
	// is already registered; the existing tag is returned in that case.
	Create(ctx context.Context, name string) (tag domain.Tag, created bool, err error)

	// EnsureAll registers every name in names that is not yet registered,
	// preserving the order of names for the new positions. Idempotent.
	EnsureAll(ctx context.Context, names []string) error

	// GetByName returns the tag called name or domain.ErrNotFound.
	GetByName(ctx context.Context, name string) (domain.Tag, error)

	// List returns all tags whose name contains q (case-insensitive), in
	// registry order. If q is empty, all tags are returned.
	List(ctx context.Context, q string) ([]domain.Tag, error)

	// ListPaged returns one page of tags matching q and the total count.
	ListPaged(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error)

	// Rename changes a tag's name in place, keeping its position.
	// Returns domain.ErrNotFound if oldName is not registered and
	// domain.ErrConflict if newName already is.
	Rename(ctx context.Context, oldName, newName string) (domain.Tag, error)

	// Delete unregisters name. It reports whether a row was removed.
	Delete(ctx context.Context, name string) (bool, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

const tagColumns = `id, name, position, created_at`

// Create inserts a tag. DO NOTHING suppresses RETURNING on conflict, so a
// missing row means the name was already taken and the existing one is read back.
func (r *pgTagRepo) Create(ctx context.Context, name string) (domain.Tag, bool, error) {
	const q = `
		INSERT INTO tags (name)
		VALUES (@name)
		ON CONFLICT (name) DO NOTHING
		RETURNING ` + tagColumns

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err == nil {
		return tag, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Tag{}, false, fmt.Errorf("repo.TagRepo.Create: %w", mapError(err))
	}

	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("repo.TagRepo.Create: %w", err)
	}
	return existing, false, nil
}

// EnsureAll inserts the missing names in one statement. WITH ORDINALITY keeps
// the caller's order so the new tags land in the registry in that order.
//
// Existing names are touched with a no-op update so their rows stay locked
// until the transaction ends. A concurrent Delete or Rename of one of them
// waits for the entity write that follows, and its cascade then sees it.
func (r *pgTagRepo) EnsureAll(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	const q = `
		INSERT INTO tags (name)
		SELECT n.name
		FROM unnest(@names::text[]) WITH ORDINALITY AS n(name, ord)
		GROUP BY n.name
		ORDER BY min(n.ord)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"names": names}); err != nil {
		return fmt.Errorf("repo.TagRepo.EnsureAll: %w", mapError(err))
	}
	return nil
}

func (r *pgTagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	const q = `SELECT ` + tagColumns + ` FROM tags WHERE name = @name`

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByName: %w", mapError(err))
	}
	return tag, nil
}

const tagWhere = `WHERE (@q = '' OR strpos(lower(name), lower(@q)) > 0)`

// List returns the matching tags in registry order.
func (r *pgTagRepo) List(ctx context.Context, q string) ([]domain.Tag, error) {
	sql := `SELECT ` + tagColumns + ` FROM tags ` + tagWhere + ` ORDER BY position`

	tags, err := r.query(ctx, sql, pgx.NamedArgs{"q": q})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	return tags, nil
}

// ListPaged returns one page of matching tags ordered by position.
func (r *pgTagRepo) ListPaged(ctx context.Context, q string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	args := pgx.NamedArgs{"q": q, "limit": p.Limit, "offset": p.Offset()}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tags `+tagWhere, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: count: %w", err)
	}

	sql := `SELECT ` + tagColumns + ` FROM tags ` + tagWhere + `
		ORDER BY position
		LIMIT @limit OFFSET @offset`
	tags, err := r.query(ctx, sql, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: %w", err)
	}
	return tags, total, nil
}

// Rename updates the name column only; id and position are untouched.
func (r *pgTagRepo) Rename(ctx context.Context, oldName, newName string) (domain.Tag, error) {
	const q = `
		UPDATE tags SET name = @new
		WHERE name = @old
		RETURNING ` + tagColumns

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"old": oldName, "new": newName}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Rename: %w", mapError(err))
	}
	return tag, nil
}

func (r *pgTagRepo) Delete(ctx context.Context, name string) (bool, error) {
	const q = `DELETE FROM tags WHERE name = @name`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"name": name})
	if err != nil {
		return false, fmt.Errorf("repo.TagRepo.Delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgTagRepo) query(ctx context.Context, sql string, args pgx.NamedArgs) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tags, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	if err := s.Scan(&id, &t.Name, &t.Position, &t.CreatedAt); err != nil {
		return domain.Tag{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
