package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/Veraticus/bizmetrics/internal/service"
	"github.com/shopspring/decimal"
)

// SalesBuilder accumulates sale records for one owner.
type SalesBuilder struct {
	ownerID string
	sales   []model.SaleRecord
}

// NewSalesBuilder starts a builder for ownerID.
func NewSalesBuilder(ownerID string) *SalesBuilder {
	return &SalesBuilder{ownerID: ownerID}
}

// Add appends a sale. amount must be a valid decimal string.
func (b *SalesBuilder) Add(date, product, amount string) *SalesBuilder {
	b.sales = append(b.sales, model.SaleRecord{
		OwnerID:     b.ownerID,
		Date:        date,
		ProductName: product,
		Amount:      model.RoundMoney(decimal.RequireFromString(amount)),
	})
	return b
}

// Records returns a copy of the accumulated sales.
func (b *SalesBuilder) Records() []model.SaleRecord {
	out := make([]model.SaleRecord, len(b.sales))
	copy(out, b.sales)
	return out
}

// CSV renders the sales as a comma-delimited upload with a header line.
func (b *SalesBuilder) CSV() string {
	var sb strings.Builder
	sb.WriteString("data,produto,valor\n")
	for _, s := range b.sales {
		fmt.Fprintf(&sb, "%s,%s,%s\n", s.Date, s.ProductName, s.Amount.StringFixed(2))
	}
	return sb.String()
}

// Seed stores the sales as one completed batch and returns it.
func (b *SalesBuilder) Seed(t *testing.T, store service.Storage) *model.UploadBatch {
	t.Helper()
	ctx := context.Background()

	sales := b.Records()
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Amount)
	}

	batch := &model.UploadBatch{
		OwnerID:      b.ownerID,
		FileName:     "seed.csv",
		Status:       model.BatchCompleted,
		RecordCount:  len(sales),
		TotalRevenue: total,
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("failed to create batch: %v", err)
	}
	for i := range sales {
		sales[i].BatchID = batch.ID
	}
	if len(sales) > 0 {
		if err := tx.InsertSales(ctx, sales); err != nil {
			t.Fatalf("failed to insert sales: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit seed: %v", err)
	}
	return batch
}
