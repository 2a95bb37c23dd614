//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"bizdir.app/directory/core/db"
)

type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *db.DB
}

// NewPostgresContainer starts PostgreSQL, applies all migrations and
// terminates the container when t finishes.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("directory"),
		tcpostgres.WithUsername("directory"),
		tcpostgres.WithPassword("directory"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := db.Migrate(ctx, dsn, "up"); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	database, err := db.New(ctx, db.Config{DSN: dsn, MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(database.Close)

	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        database,
	}
}
