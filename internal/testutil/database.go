// Package testutil provides test helpers shared by the service packages: an in-memory
// database and a fluent builder for seeding sales.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/Veraticus/bizmetrics/internal/service"
	"github.com/Veraticus/bizmetrics/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	testutil.NewSalesBuilder("owner-1").
//		Add("2026-01-01", "Café", "10.00").
//		Seed(t, db.Storage)
func SetupTestDB(t *testing.T, opts ...storage.Option) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:", opts...)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// WithTransaction executes the given function within a database transaction.
// The transaction is always rolled back after the function completes.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	ctx := context.Background()
	tx, err := db.Storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}

// MustCountSales returns the owner's sale count or fails the test.
func (db *TestDB) MustCountSales(ownerID string) int {
	db.t.Helper()
	count, err := db.Storage.CountSales(context.Background(), service.SalesFilter{OwnerID: ownerID})
	if err != nil {
		db.t.Fatalf("failed to count sales: %v", err)
	}
	return count
}

// MustListBatches returns the owner's batches or fails the test.
func (db *TestDB) MustListBatches(ownerID string) []model.UploadBatch {
	db.t.Helper()
	batches, err := db.Storage.ListBatches(context.Background(), ownerID)
	if err != nil {
		db.t.Fatalf("failed to list batches: %v", err)
	}
	return batches
}

// StepClock returns a clock starting at start that advances by step on every call.
// It keeps created_at ordering deterministic in tests.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(step)
		return current
	}
}
