// Package repo contains all database access logic for the FlowDeck API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/flowdeck/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txBeginner is satisfied by *pgxpool.Pool and by pgx.Tx (as a savepoint).
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Workflows  WorkflowRepo
	Assistants AssistantRepo
	Tags       TagRepo
}

// NewRepos binds all repositories to db.
func NewRepos(db db) Repos {
	return Repos{
		Workflows:  NewWorkflowRepo(db),
		Assistants: NewAssistantRepo(db),
		Tags:       NewTagRepo(db),
	}
}

// UnitOfWork runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}

type pgUnitOfWork struct {
	db txBeginner
}

// NewUnitOfWork returns a UnitOfWork over db.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx so the unit runs
// inside a savepoint of the test's rolled-back transaction.
func NewUnitOfWork(db txBeginner) UnitOfWork {
	return &pgUnitOfWork{db: db}
}

func (u *pgUnitOfWork) Do(ctx context.Context, fn func(r Repos) error) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.UnitOfWork.Do: begin: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.UnitOfWork.Do: commit: %w", err)
	}
	return nil
}

// Postgres error codes mapped onto domain sentinels.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// mapError translates row-not-found and constraint violations into domain
// sentinels and leaves every other error untouched.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.ConstraintName)
		}
	}
	return err
}
