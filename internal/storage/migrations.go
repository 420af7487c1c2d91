package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS upload_batches (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					file_name TEXT,
					record_count INTEGER NOT NULL,
					total_revenue_cents INTEGER NOT NULL,
					status TEXT NOT NULL DEFAULT 'processing'
						CHECK (status IN ('processing', 'completed', 'failed')),
					error_message TEXT,
					created_at TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS sales (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					sale_date TEXT NOT NULL,
					product_name TEXT NOT NULL,
					amount_cents INTEGER NOT NULL CHECK (amount_cents > 0),
					batch_id TEXT REFERENCES upload_batches(id) ON DELETE CASCADE,
					created_at TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS ai_analyses (
					id TEXT PRIMARY KEY,
					owner_id TEXT NOT NULL,
					data_hash TEXT NOT NULL,
					prompt_used TEXT NOT NULL,
					analysis_text TEXT NOT NULL,
					model_used TEXT NOT NULL,
					tokens_input INTEGER,
					tokens_output INTEGER,
					created_at TEXT NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add owner-scoped indexes",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_sales_user_date ON sales(owner_id, sale_date)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_user_product ON sales(owner_id, product_name)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_batch ON sales(batch_id)`,
				`CREATE INDEX IF NOT EXISTS idx_batches_owner ON upload_batches(owner_id, created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Index analyses by owner and data hash",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_ai_user_hash ON ai_analyses(owner_id, data_hash, created_at)`)
			return err
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion returns the current PRAGMA user_version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
