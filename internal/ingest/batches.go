package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
)

// GetBatch returns one of the owner's batches.
func (s *Service) GetBatch(ctx context.Context, ownerID, batchID string) (*model.UploadBatch, error) {
	if ownerID == "" || batchID == "" {
		return nil, common.Validation("owner and batch are required")
	}

	batch, err := s.store.GetBatch(ctx, ownerID, batchID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NotFound("batch %s not found", batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}
	return batch, nil
}

// ListBatches returns the owner's batches, newest first.
func (s *Service) ListBatches(ctx context.Context, ownerID string) ([]model.UploadBatch, error) {
	if ownerID == "" {
		return nil, common.Validation("owner is required")
	}

	batches, err := s.store.ListBatches(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

// DeleteBatch removes a batch and every sale it created, returning the number of sales removed.
// A batch owned by someone else is reported as not found.
func (s *Service) DeleteBatch(ctx context.Context, ownerID, batchID string) (int, error) {
	if ownerID == "" || batchID == "" {
		return 0, common.Validation("owner and batch are required")
	}

	deleted, err := s.store.DeleteBatch(ctx, ownerID, batchID)
	if errors.Is(err, common.ErrNotFound) {
		return 0, common.NotFound("batch %s not found", batchID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete batch: %w", err)
	}

	s.logger.Info("Deleted sales batch", "owner_id", ownerID, "batch_id", batchID, "sales", deleted)
	return deleted, nil
}
