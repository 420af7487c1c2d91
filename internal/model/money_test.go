package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"59.90", "59.90"},
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"0.125", "0.13"},
		{"99999999.99", "99999999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundMoney(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCentsRoundTrip(t *testing.T) {
	d := decimal.RequireFromString("1234.56")
	assert.Equal(t, int64(123456), Cents(d))
	assert.True(t, FromCents(123456).Equal(d))
	assert.Equal(t, "0.05", FromCents(5).StringFixed(2))
}

func TestSaleRecordKey(t *testing.T) {
	a := SaleRecord{Date: "2026-02-05", ProductName: "Camiseta", Amount: decimal.RequireFromString("59.9")}
	b := SaleRecord{Date: "2026-02-05", ProductName: "Camiseta", Amount: decimal.RequireFromString("59.90")}
	assert.Equal(t, a.Key(), b.Key())
}

func TestRejectReasonDescription(t *testing.T) {
	assert.Equal(t, "invalid date", RejectInvalidDate.Description())
	assert.Equal(t, "unknown", RejectReason("unknown").Description())
}

func TestBatchStatusValid(t *testing.T) {
	assert.True(t, BatchCompleted.Valid())
	assert.False(t, BatchStatus("done").Valid())
}

func TestSaleRecordJSON(t *testing.T) {
	sale := SaleRecord{
		CreatedAt:   time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("59.9"),
		ID:          "sale-1",
		OwnerID:     "owner-1",
		Date:        "2026-02-05",
		ProductName: "Camiseta",
	}

	data, err := json.Marshal(sale)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "59.90", got["amount"])
	assert.Equal(t, "Camiseta", got["product_name"])
	assert.Equal(t, "2026-02-05", got["date"])
	assert.Equal(t, "2026-02-05T12:00:00Z", got["created_at"])
	assert.NotContains(t, got, "batch_id")
	assert.NotContains(t, got, "ProductName")
}

func TestUploadBatchJSON(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  string
	}{
		{name: "one decimal place", total: "12.5", want: "12.50"},
		{name: "whole amount", total: "100", want: "100.00"},
		{name: "already fixed", total: "0.05", want: "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := UploadBatch{
				TotalRevenue: decimal.RequireFromString(tt.total),
				ID:           "batch-1",
				FileName:     "vendas.csv",
				Status:       BatchCompleted,
				RecordCount:  2,
			}

			data, err := json.Marshal(batch)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.want, got["total_revenue"])
			assert.Equal(t, "vendas.csv", got["file_name"])
			assert.Equal(t, "completed", got["status"])
			assert.InDelta(t, 2, got["record_count"], 0)
			assert.NotContains(t, got, "error_detail")
		})
	}
}
