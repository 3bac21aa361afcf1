package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// postgresImage is the image used when integration tests start their own database.
const postgresImage = "postgres:16-alpine"

// Teardown stops a container started by StartPostgres.
type Teardown func(ctx context.Context, opts ...testcontainers.TerminateOption) error

// StartPostgres starts a disposable Postgres container and returns its DSN.
func StartPostgres(ctx context.Context) (string, Teardown, error) {
	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("flowdeck_test"),
		postgres.WithUsername("flowdeck"),
		postgres.WithPassword("flowdeck"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return "", nil, fmt.Errorf("testutil.StartPostgres: run: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return "", nil, fmt.Errorf("testutil.StartPostgres: connection string: %w", err)
	}
	return dsn, ctr.Terminate, nil
}

// SetupDatabase is called from TestMain. When TEST_DATABASE_URL is unset and
// TEST_CONTAINERS=1, it starts a container and exports its DSN as
// TEST_DATABASE_URL so NewPool and NewSQLDB pick it up. The returned teardown
// is never nil.
func SetupDatabase(ctx context.Context) (Teardown, error) {
	noop := func(context.Context, ...testcontainers.TerminateOption) error { return nil }
	if os.Getenv("TEST_DATABASE_URL") != "" || os.Getenv("TEST_CONTAINERS") != "1" {
		return noop, nil
	}

	dsn, teardown, err := StartPostgres(ctx)
	if err != nil {
		return noop, err
	}
	if err := os.Setenv("TEST_DATABASE_URL", dsn); err != nil {
		_ = teardown(ctx)
		return noop, fmt.Errorf("testutil.SetupDatabase: %w", err)
	}
	return teardown, nil
}
