// Command migrate applies and inspects the database schema.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/news-board-api/internal/config"
	"github.com/news-board-api/internal/database"
	"github.com/news-board-api/pkg/logger"
	"github.com/spf13/cobra"
)

var migrationsPath string

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the news board database schema",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error {
			return db.RunMigrations(migrationsPath)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error {
			return db.MigrateDown(migrationsPath)
		})
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto [version]",
	Short: "Migrate up or down to the given version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withDB(func(db *database.DB) error {
			return db.MigrateToVersion(migrationsPath, uint(version))
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.DB) error {
			version, dirty, err := db.MigrationVersion(migrationsPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&migrationsPath, "path", "p", "", "Path to migration files (defaults to MIGRATIONS_PATH)")
	rootCmd.AddCommand(upCmd, downCmd, gotoCmd, versionCmd)
}

// withDB connects using the environment configuration and runs fn
func withDB(fn func(db *database.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if migrationsPath == "" {
		migrationsPath = cfg.Database.MigrationsPath
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
