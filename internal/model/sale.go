// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage format of a sale's calendar date.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a real calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// MaxProductNameLength is the longest product name accepted, counted after HTML escaping.
const MaxProductNameLength = 255

// SaleRecord is a single validated sale. Amount always carries exactly two decimal places.
type SaleRecord struct {
	CreatedAt   time.Time       `json:"created_at"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	BatchID     string          `json:"batch_id,omitempty"` // empty when the sale was not created by an upload
	Date        string          `json:"date"`               // YYYY-MM-DD, no time component
	ProductName string          `json:"product_name"`
}

// MarshalJSON writes the amount with exactly two decimal places.
func (s SaleRecord) MarshalJSON() ([]byte, error) {
	type plain SaleRecord
	return json.Marshal(struct {
		plain
		Amount string `json:"amount"`
	}{plain: plain(s), Amount: s.Amount.StringFixed(2)})
}

// Key identifies a sale for duplicate detection within one upload.
func (s SaleRecord) Key() string {
	return s.Date + "|" + s.ProductName + "|" + s.Amount.StringFixed(2)
}

// BatchStatus is the lifecycle state of an upload batch.
type BatchStatus string

// Batch status constants.
const (
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchProcessing, BatchCompleted, BatchFailed:
		return true
	}
	return false
}

// UploadBatch records one CSV ingestion and the totals of the sales it created.
type UploadBatch struct {
	CreatedAt    time.Time       `json:"created_at"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	FileName     string          `json:"file_name,omitempty"`
	Status       BatchStatus     `json:"status"`
	ErrorDetail  string          `json:"error_detail,omitempty"`
	RecordCount  int             `json:"record_count"`
}

// MarshalJSON writes the total revenue with exactly two decimal places.
func (b UploadBatch) MarshalJSON() ([]byte, error) {
	type plain UploadBatch
	return json.Marshal(struct {
		plain
		TotalRevenue string `json:"total_revenue"`
	}{plain: plain(b), TotalRevenue: b.TotalRevenue.StringFixed(2)})
}
