// Package service defines the store contracts consumed by the core services.
package service

import (
	"context"

	"github.com/Veraticus/bizmetrics/internal/model"
)

// SalesFilter selects the sales of one owner. OwnerID is mandatory; DateFrom and DateTo are
// inclusive YYYY-MM-DD bounds and, like BatchID and Product, optional when empty.
type SalesFilter struct {
	OwnerID  string
	DateFrom string
	DateTo   string
	BatchID  string
	Product  string // substring match on the stored product name
}

// SortOrder is the direction of a sorted listing.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SalesSortField names a column sales can be listed by.
type SalesSortField string

// Sortable sale fields.
const (
	SortBySaleDate    SalesSortField = "sale_date"
	SortByProductName SalesSortField = "product_name"
	SortByAmount      SalesSortField = "amount"
)

// SalesPageQuery is a paginated, sorted sales listing request.
type SalesPageQuery struct {
	SortBy SalesSortField
	Order  SortOrder
	Filter SalesFilter
	Limit  int
	Offset int
}

// SalesReader reads sale records.
type SalesReader interface {
	// QuerySales returns every sale matching filter ordered by sale date, then insertion order.
	QuerySales(ctx context.Context, filter SalesFilter) ([]model.SaleRecord, error)
	CountSales(ctx context.Context, filter SalesFilter) (int, error)
	ListSalesPage(ctx context.Context, query SalesPageQuery) ([]model.SaleRecord, error)
}

// BatchWriter is the set of writes an ingestion performs inside one transaction.
type BatchWriter interface {
	CreateBatch(ctx context.Context, batch *model.UploadBatch) error
	InsertSales(ctx context.Context, sales []model.SaleRecord) error
	CountBatchSales(ctx context.Context, batchID string) (int, error)
}

// BatchStore reads and removes upload batches.
type BatchStore interface {
	GetBatch(ctx context.Context, ownerID, batchID string) (*model.UploadBatch, error)
	ListBatches(ctx context.Context, ownerID string) ([]model.UploadBatch, error)
	// DeleteBatch removes the batch's sales and then the batch atomically, returning the
	// number of sales removed.
	DeleteBatch(ctx context.Context, ownerID, batchID string) (int, error)
}

// AnalysisStore persists generated analyses.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, entry *model.AnalysisCacheEntry) error
	// GetLatestAnalysis returns the most recently created entry for (ownerID, dataHash).
	GetLatestAnalysis(ctx context.Context, ownerID, dataHash string) (*model.AnalysisCacheEntry, error)
	ListAnalyses(ctx context.Context, ownerID string, limit int) ([]model.AnalysisCacheEntry, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	SalesReader
	BatchStore
	AnalysisStore

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	BatchWriter
	Commit() error
	Rollback() error
}
