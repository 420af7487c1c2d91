package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/bizmetrics/internal/cli"
	"github.com/Veraticus/bizmetrics/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Other commands migrate automatically; use --status to inspect the schema
without changing it.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		content := fmt.Sprintf("Database: %s\nCurrent version: %d\nLatest version: %d",
			cfg.Database.Path, current, storage.ExpectedSchemaVersion)
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.FolderIcon+" Migration Status", content))
		return nil
	}

	slog.Info("Running database migrations", "database", cfg.Database.Path)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Database migrations completed"))
	return nil
}
