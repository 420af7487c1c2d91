package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/google/uuid"
)

const batchColumns = `id, owner_id, file_name, record_count, total_revenue_cents, status, error_message, created_at`

func (s *SQLiteStorage) createBatchTx(ctx context.Context, q queryable, batch *model.UploadBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	var createdAt string
	batch.CreatedAt, createdAt = s.timestamp(batch.CreatedAt)

	_, err := q.ExecContext(ctx, `
		INSERT INTO upload_batches (`+batchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		batch.ID,
		batch.OwnerID,
		nullString(batch.FileName),
		batch.RecordCount,
		model.Cents(batch.TotalRevenue),
		string(batch.Status),
		nullString(batch.ErrorDetail),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

// GetBatch returns the batch owned by ownerID. A batch owned by someone else is reported as
// not found.
func (s *SQLiteStorage) GetBatch(ctx context.Context, ownerID, batchID string) (*model.UploadBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if err := validateString(batchID, "batchID"); err != nil {
		return nil, err
	}
	return getBatch(ctx, s.db, ownerID, batchID)
}

func getBatch(ctx context.Context, q queryable, ownerID, batchID string) (*model.UploadBatch, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM upload_batches WHERE id = ? AND owner_id = ?`,
		batchID, ownerID)

	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("batch %s: %w", batchID, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ListBatches returns the owner's batches, newest first.
func (s *SQLiteStorage) ListBatches(ctx context.Context, ownerID string) ([]model.UploadBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+batchColumns+` FROM upload_batches WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []model.UploadBatch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}
	return batches, nil
}

// DeleteBatch deletes the batch's sales and then the batch row in one transaction.
func (s *SQLiteStorage) DeleteBatch(ctx context.Context, ownerID, batchID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return 0, err
	}
	if err := validateString(batchID, "batchID"); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getBatch(ctx, tx, ownerID, batchID); err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE batch_id = ?`, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete batch sales: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sales: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM upload_batches WHERE id = ? AND owner_id = ?`, batchID, ownerID); err != nil {
		return 0, fmt.Errorf("failed to delete batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch deletion: %w", err)
	}

	slog.Debug("Deleted batch", "batch_id", batchID, "sales", deleted)
	return int(deleted), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*model.UploadBatch, error) {
	var (
		batch        model.UploadBatch
		fileName     sql.NullString
		errorMessage sql.NullString
		status       string
		revenueCents int64
		createdAt    string
	)

	err := row.Scan(&batch.ID, &batch.OwnerID, &fileName, &batch.RecordCount, &revenueCents, &status, &errorMessage, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan batch: %w", err)
	}

	batch.FileName = fileName.String
	batch.ErrorDetail = errorMessage.String
	batch.Status = model.BatchStatus(status)
	batch.TotalRevenue = model.FromCents(revenueCents)
	if batch.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at for batch %s: %w", batch.ID, err)
	}
	return &batch, nil
}
