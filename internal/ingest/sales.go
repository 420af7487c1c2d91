package ingest

import (
	"context"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/Veraticus/bizmetrics/internal/salescsv"
	"github.com/Veraticus/bizmetrics/internal/service"
)

// Sale listing bounds.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// SalesQuery requests one page of an owner's sales. Zero values select the defaults:
// page 1, DefaultPageLimit rows, newest sale date first.
type SalesQuery struct {
	OwnerID  string
	DateFrom string
	DateTo   string
	BatchID  string
	Product  string
	SortBy   service.SalesSortField
	Order    service.SortOrder
	Page     int
	Limit    int
}

// Pagination describes where a page sits in the full listing.
type Pagination struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
}

// SalesPage is one page of sales.
type SalesPage struct {
	Data       []model.SaleRecord `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// ListSales returns a filtered, sorted page of the owner's sales.
func (s *Service) ListSales(ctx context.Context, q SalesQuery) (*SalesPage, error) {
	pageQuery, err := q.normalize()
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountSales(ctx, pageQuery.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	sales, err := s.store.ListSalesPage(ctx, pageQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	if sales == nil {
		sales = []model.SaleRecord{}
	}

	return &SalesPage{
		Data: sales,
		Pagination: Pagination{
			Page:         q.Page,
			Limit:        pageQuery.Limit,
			TotalRecords: total,
			TotalPages:   (total + pageQuery.Limit - 1) / pageQuery.Limit,
		},
	}, nil
}

// normalize applies defaults in place and validates the query.
func (q *SalesQuery) normalize() (service.SalesPageQuery, error) {
	if q.OwnerID == "" {
		return service.SalesPageQuery{}, common.Validation("owner is required")
	}

	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 1 {
		return service.SalesPageQuery{}, common.Validation("page must be at least 1, got %d", q.Page)
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit < 1 || q.Limit > MaxPageLimit {
		return service.SalesPageQuery{}, common.Validation("limit must be between 1 and %d, got %d", MaxPageLimit, q.Limit)
	}

	switch q.SortBy {
	case "":
		q.SortBy = service.SortBySaleDate
	case service.SortBySaleDate, service.SortByProductName, service.SortByAmount:
	default:
		return service.SalesPageQuery{}, common.Validation("cannot sort by %q", q.SortBy)
	}
	switch q.Order {
	case "":
		q.Order = service.SortDesc
	case service.SortAsc, service.SortDesc:
	default:
		return service.SalesPageQuery{}, common.Validation("invalid sort order %q", q.Order)
	}

	if q.DateFrom != "" && !model.ValidDate(q.DateFrom) {
		return service.SalesPageQuery{}, common.Validation("invalid start date %q", q.DateFrom)
	}
	if q.DateTo != "" && !model.ValidDate(q.DateTo) {
		return service.SalesPageQuery{}, common.Validation("invalid end date %q", q.DateTo)
	}
	if q.DateFrom != "" && q.DateTo != "" && q.DateFrom > q.DateTo {
		return service.SalesPageQuery{}, common.Validation("start date %s is after end date %s", q.DateFrom, q.DateTo)
	}

	filter := service.SalesFilter{
		OwnerID:  q.OwnerID,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		BatchID:  q.BatchID,
	}
	if q.Product != "" {
		filter.Product = salescsv.EscapeProduct(q.Product)
	}

	return service.SalesPageQuery{
		Filter: filter,
		SortBy: q.SortBy,
		Order:  q.Order,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	}, nil
}
