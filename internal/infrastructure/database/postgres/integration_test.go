//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/PlasmidCatalog/internal/config"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/database/postgres"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

const migrationsDir = "../../../../migrations"

// startPostgres launches a PostgreSQL 16 container and returns its settings.
func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "plasmid_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Enabled:  true,
		Host:     host,
		Port:     port.Int(),
		User:     "test",
		Password: "test",
		DBName:   "plasmid_test",
		SSLMode:  "disable",
		MaxConns: 4,
	}
}

func connect(t *testing.T, cfg config.DatabaseConfig) *pgxpool.Pool {
	t.Helper()
	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		p, err := postgres.NewConnectionPool(context.Background(), cfg, logging.NewNopLogger())
		if err != nil {
			return false
		}
		pool = p
		return true
	}, 30*time.Second, time.Second)
	t.Cleanup(func() { postgres.Close(pool) })
	return pool
}

// ─────────────────────────────────────────────────────────────────────────────
// Connection
// ─────────────────────────────────────────────────────────────────────────────

func TestConnection(t *testing.T) {
	cfg := startPostgres(t)
	pool := connect(t, cfg)
	ctx := context.Background()

	require.NoError(t, postgres.HealthCheck(ctx, pool, logging.NewNopLogger()))

	t.Run("commits on success", func(t *testing.T) {
		err := postgres.WithTransaction(ctx, pool, func(tx pgx.Tx, txCtx context.Context) error {
			if _, err := tx.Exec(txCtx, "CREATE TABLE tx_commit (id INT)"); err != nil {
				return err
			}
			_, err := tx.Exec(txCtx, "INSERT INTO tx_commit VALUES (1)")
			return err
		})
		require.NoError(t, err)

		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM tx_commit").Scan(&n))
		assert.Equal(t, 1, n)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		_, err := pool.Exec(ctx, "CREATE TABLE tx_rollback (id INT PRIMARY KEY)")
		require.NoError(t, err)

		sentinel := errors.New(errors.ErrCodeInternal, "abort")
		err = postgres.WithTransaction(ctx, pool, func(tx pgx.Tx, txCtx context.Context) error {
			if _, err := tx.Exec(txCtx, "INSERT INTO tx_rollback VALUES (1)"); err != nil {
				return err
			}
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM tx_rollback").Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		_, err := pool.Exec(ctx, "CREATE TABLE tx_panic (id INT)")
		require.NoError(t, err)

		assert.Panics(t, func() {
			_ = postgres.WithTransaction(ctx, pool, func(tx pgx.Tx, txCtx context.Context) error {
				_, _ = tx.Exec(txCtx, "INSERT INTO tx_panic VALUES (1)")
				panic("boom")
			})
		})

		var n int
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM tx_panic").Scan(&n))
		assert.Zero(t, n)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Migrations
// ─────────────────────────────────────────────────────────────────────────────

func TestMigrations(t *testing.T) {
	cfg := startPostgres(t)
	pool := connect(t, cfg)
	ctx := context.Background()
	dsn := cfg.DSN()

	version, dirty, err := postgres.MigrationStatus(dsn, migrationsDir)
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, postgres.RunMigrations(dsn, migrationsDir))
	require.NoError(t, postgres.RunMigrations(dsn, migrationsDir), "no change is not an error")

	version, _, err = postgres.MigrationStatus(dsn, migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	for _, table := range []string{"plasmid_records", "plasmid_corrections"} {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	require.NoError(t, postgres.RollbackMigration(dsn, migrationsDir, 1))
	version, _, err = postgres.MigrationStatus(dsn, migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	err = postgres.RollbackMigration(dsn, migrationsDir, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))

	require.NoError(t, postgres.ResetDatabase(dsn, migrationsDir))
	version, _, err = postgres.MigrationStatus(dsn, migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	require.NoError(t, postgres.ForceMigrationVersion(dsn, migrationsDir, 1))
	version, dirty, err = postgres.MigrationStatus(dsn, migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

//Personal.AI order the ending
