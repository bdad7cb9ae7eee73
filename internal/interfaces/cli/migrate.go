package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/database/postgres"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// Migration entry points; tests replace them.
var (
	migrateUp     = postgres.RunMigrations
	migrateDown   = postgres.RollbackMigration
	migrateStatus = postgres.MigrationStatus
	migrateForce  = postgres.ForceMigrationVersion
)

// NewMigrateCmd creates the migrate command for the PostgreSQL record and
// correction tables.
func NewMigrateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "migrations directory (overrides database.migration_path)")

	target := func(cmd *cobra.Command) (dbURL, dir string, err error) {
		cliCtx, err := GetCLIContext(cmd)
		if err != nil {
			return "", "", err
		}
		dir = cliCtx.Config.Database.MigrationPath
		if path != "" {
			dir = path
		}
		return cliCtx.Config.Database.DSN(), dir, nil
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, dir, err := target(cmd)
			if err != nil {
				return err
			}
			if err := migrateUp(dbURL, dir); err != nil {
				return err
			}
			return printStatus(cmd, dbURL, dir)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return errors.InvalidParam("--steps must be at least 1")
			}
			dbURL, dir, err := target(cmd)
			if err != nil {
				return err
			}
			if err := migrateDown(dbURL, dir, steps); err != nil {
				return err
			}
			return printStatus(cmd, dbURL, dir)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, dir, err := target(cmd)
			if err != nil {
				return err
			}
			return printStatus(cmd, dbURL, dir)
		},
	}

	force := &cobra.Command{
		Use:   "force <version>",
		Short: "Set the schema version without running migrations (clears the dirty flag)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.InvalidParam("version must be an integer")
			}
			dbURL, dir, err := target(cmd)
			if err != nil {
				return err
			}
			if err := migrateForce(dbURL, dir, v); err != nil {
				return err
			}
			return printStatus(cmd, dbURL, dir)
		},
	}

	cmd.AddCommand(up, down, status, force)
	return cmd
}

type migrationState struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

func (s migrationState) WriteText(w io.Writer) {
	state := color.GreenString("clean")
	if s.Dirty {
		state = color.RedString("dirty")
	}
	fmt.Fprintf(w, "schema version %d (%s)\n", s.Version, state)
}

func printStatus(cmd *cobra.Command, dbURL, dir string) error {
	v, dirty, err := migrateStatus(dbURL, dir)
	if err != nil {
		return err
	}
	return PrintResult(cmd, migrationState{Version: v, Dirty: dirty})
}

//Personal.AI order the ending
