package repository_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/news-board-api/internal/database"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB holds the test database connection and container
type TestDB struct {
	DB        *database.DB
	Container testcontainers.Container
}

func packageDir() string {
	_, currentFile, _, _ := runtime.Caller(0)
	return filepath.Dir(currentFile)
}

// SetupTestDB creates a PostgreSQL container and applies migrations. It skips
// the test in short mode or when no container runtime is available.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	migrationsPath := filepathToMigrations()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("nc_news_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to get connection string: %v", err)
	}

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to open database: %v", err)
	}
	db := database.Wrap(sqlDB, zerolog.Nop())

	if err := db.RunMigrations(migrationsPath); err != nil {
		_ = sqlDB.Close()
		_ = pgContainer.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	tdb := &TestDB{DB: db, Container: pgContainer}
	t.Cleanup(func() { tdb.Cleanup(t) })
	return tdb
}

// Seed truncates every table and loads testdata/seed.sql
func (tdb *TestDB) Seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if _, err := tdb.DB.ExecContext(ctx,
		"TRUNCATE TABLE comments, articles, users, topics RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	seed, err := os.ReadFile(filepath.Join(packageDir(), "testdata", "seed.sql"))
	if err != nil {
		t.Fatalf("Failed to read seed file: %v", err)
	}
	if _, err := tdb.DB.ExecContext(ctx, string(seed)); err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}
}

// Cleanup closes the connection pool and terminates the container
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}
