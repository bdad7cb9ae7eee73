package postgres

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // Postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // File source driver

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

const defaultMigrationPath = "migrations"

// migrationSource turns a directory into a golang-migrate source URL.
func migrationSource(path string) string {
	if path == "" {
		path = defaultMigrationPath
	}
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

func newMigrate(dbURL, path string) (*migrate.Migrate, error) {
	m, err := migrate.New(migrationSource(path), dbURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create migrate instance")
	}
	return m, nil
}

// RunMigrations applies all pending migrations.  No pending migrations is not
// an error.
func RunMigrations(dbURL, path string) error {
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to run migrations")
	}
	return nil
}

// RollbackMigration rolls back steps migrations.
func RollbackMigration(dbURL, path string, steps int) error {
	if steps <= 0 {
		return errors.Newf(errors.ErrCodeValidation, "steps must be greater than 0, got %d", steps)
	}
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil {
		if stderrors.Is(err, migrate.ErrNoChange) {
			return errors.New(errors.ErrCodeValidation, "no migrations to roll back")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to roll back migrations")
	}
	return nil
}

// MigrationStatus returns the applied version and whether a previous
// migration left the schema dirty.  Version 0 means nothing is applied.
func MigrationStatus(dbURL, path string) (version uint, dirty bool, err error) {
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if err != nil {
		if stderrors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get migration version")
	}
	return version, dirty, nil
}

// ResetDatabase rolls everything back and re-applies it.  Destructive; for
// development and tests only.
func ResetDatabase(dbURL, path string) error {
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to roll back all migrations")
	}
	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to re-apply migrations")
	}
	return nil
}

// ForceMigrationVersion sets the recorded version without running anything.
// Used to recover from a dirty state.
func ForceMigrationVersion(dbURL, path string, version int) error {
	m, err := newMigrate(dbURL, path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, fmt.Sprintf("failed to force version %d", version))
	}
	return nil
}

//Personal.AI order the ending
