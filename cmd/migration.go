package cmd

import (
	"errors"
	"fmt"
	"log"

	"stock-scoring/config"
	"stock-scoring/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

func runMigrations(direction string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dsn := postgres.URL(cfg.DB)
	migrationsPath := "file://" + migrationsDir

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-1)
	}

	if migrationErr != nil && !errors.Is(migrationErr, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", migrationErr)
	}
	fmt.Printf("Migration %s applied successfully.\n", direction)

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Migration source error on close: %v\n", srcErr)
	}
	if dbErr != nil {
		log.Printf("Migration database error on close: %v\n", dbErr)
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("down")
	},
}

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory holding the migration files")
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
}
