package ingest

import (
	"context"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/model"
)

// writeBatch creates the batch and inserts its sales in chunks inside one transaction.
// The batch row is only committed once the stored count matches what was accepted.
func (s *Service) writeBatch(ctx context.Context, batch *model.UploadBatch, sales []model.SaleRecord) (err error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Warn("Failed to roll back import", "error", rbErr)
			}
		}
	}()

	if err = tx.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	for i := range sales {
		sales[i].BatchID = batch.ID
	}

	inserted := 0
	for start := 0; start < len(sales); start += s.chunkSize {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("import canceled: %w", err)
		}

		end := min(start+s.chunkSize, len(sales))
		if err = tx.InsertSales(ctx, sales[start:end]); err != nil {
			return fmt.Errorf("failed to insert sales %d-%d: %w", start+1, end, err)
		}
		inserted = end

		s.logger.Debug("Inserted sales chunk", "batch_id", batch.ID, "inserted", inserted, "total", len(sales))
		if s.progress != nil {
			s.progress(inserted, len(sales))
		}
	}

	stored, err := tx.CountBatchSales(ctx, batch.ID)
	if err != nil {
		return fmt.Errorf("failed to verify batch: %w", err)
	}
	if stored != batch.RecordCount {
		err = fmt.Errorf("batch %s stored %d sales, expected %d", batch.ID, stored, batch.RecordCount)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
