package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/bizmetrics/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesBuilder_Seed(t *testing.T) {
	db := SetupTestDB(t)

	batch := NewSalesBuilder("owner-1").
		Add("2026-01-01", "Café", "10").
		Add("2026-01-02", "Pão", "2.505").
		Seed(t, db.Storage)

	assert.Equal(t, 2, batch.RecordCount)
	assert.Equal(t, "12.51", batch.TotalRevenue.StringFixed(2))
	assert.Equal(t, 2, db.MustCountSales("owner-1"))
	assert.Zero(t, db.MustCountSales("owner-2"))

	batches := db.MustListBatches("owner-1")
	require.Len(t, batches, 1)
	assert.Equal(t, batch.ID, batches[0].ID)
}

func TestSalesBuilder_CSV(t *testing.T) {
	csv := NewSalesBuilder("o").
		Add("2026-01-01", "Café", "10").
		CSV()

	assert.Equal(t, "data,produto,valor\n2026-01-01,Café,10.00\n", csv)
}

func TestTestDB_WithTransaction(t *testing.T) {
	db := SetupTestDB(t)
	batch := NewSalesBuilder("owner-1").
		Add("2026-01-01", "Café", "10").
		Seed(t, db.Storage)

	err := db.WithTransaction(func(tx service.Transaction) error {
		n, err := tx.CountBatchSales(context.Background(), batch.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}
