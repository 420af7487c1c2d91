// Package analytics computes read-only sales aggregations for one owner.
//
// Sums are exact decimal arithmetic over cent amounts; each monetary output
// is rounded to the cent once, after aggregation.
package analytics

import (
	"context"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/Veraticus/bizmetrics/internal/service"
)

// Top-N bounds.
const (
	MinTopProducts     = 1
	MaxTopProducts     = 20
	DefaultTopProducts = 5
)

// Range selects the sales an aggregation runs over. OwnerID is mandatory; the
// inclusive date bounds and the batch are optional.
type Range struct {
	OwnerID  string `json:"-"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	BatchID  string `json:"batch_id,omitempty"`
}

// Validate checks the owner and the date bounds.
func (r Range) Validate() error {
	if r.OwnerID == "" {
		return common.Validation("owner is required")
	}
	if r.DateFrom != "" && !model.ValidDate(r.DateFrom) {
		return common.Validation("invalid start date %q", r.DateFrom)
	}
	if r.DateTo != "" && !model.ValidDate(r.DateTo) {
		return common.Validation("invalid end date %q", r.DateTo)
	}
	if r.DateFrom != "" && r.DateTo != "" && r.DateFrom > r.DateTo {
		return common.Validation("start date %s is after end date %s", r.DateFrom, r.DateTo)
	}
	return nil
}

func (r Range) filter() service.SalesFilter {
	return service.SalesFilter{
		OwnerID:  r.OwnerID,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		BatchID:  r.BatchID,
	}
}

// Engine runs aggregations against a sales reader.
type Engine struct {
	store service.SalesReader
}

// NewEngine creates an aggregation engine.
func NewEngine(store service.SalesReader) *Engine {
	return &Engine{store: store}
}

func (e *Engine) load(ctx context.Context, r Range) ([]model.SaleRecord, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	sales, err := e.store.QuerySales(ctx, r.filter())
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	return sales, nil
}

// KPIs computes the headline indicators for r. An empty range is a KindNoData error.
func (e *Engine) KPIs(ctx context.Context, r Range) (*KPIs, error) {
	sales, err := e.load(ctx, r)
	if err != nil {
		return nil, err
	}
	return ComputeKPIs(sales)
}

// DailyRevenue returns revenue per calendar date with at least one sale, ascending.
func (e *Engine) DailyRevenue(ctx context.Context, r Range) ([]DailyRevenue, error) {
	sales, err := e.load(ctx, r)
	if err != nil {
		return nil, err
	}
	return ComputeDailyRevenue(sales), nil
}

// TopProducts returns the n best-selling products by revenue. n must be within
// [MinTopProducts, MaxTopProducts].
func (e *Engine) TopProducts(ctx context.Context, r Range, n int) ([]ProductStat, error) {
	if err := validateTopN(n); err != nil {
		return nil, err
	}
	sales, err := e.load(ctx, r)
	if err != nil {
		return nil, err
	}
	return ComputeTopProducts(sales, n), nil
}

// WeekdayDistribution returns revenue per weekday that has at least one sale.
func (e *Engine) WeekdayDistribution(ctx context.Context, r Range) ([]WeekdayStat, error) {
	sales, err := e.load(ctx, r)
	if err != nil {
		return nil, err
	}
	return ComputeWeekdayDistribution(sales)
}

// Summary composes every aggregation over one read of the range.
func (e *Engine) Summary(ctx context.Context, r Range, topN int) (*Summary, error) {
	if err := validateTopN(topN); err != nil {
		return nil, err
	}
	sales, err := e.load(ctx, r)
	if err != nil {
		return nil, err
	}

	kpis, err := ComputeKPIs(sales)
	if err != nil {
		return nil, err
	}
	weekdays, err := ComputeWeekdayDistribution(sales)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Range:        r,
		KPIs:         *kpis,
		DailyRevenue: ComputeDailyRevenue(sales),
		TopProducts:  ComputeTopProducts(sales, topN),
		Weekdays:     weekdays,
	}, nil
}

func validateTopN(n int) error {
	if n < MinTopProducts || n > MaxTopProducts {
		return common.Validation("top products must be between %d and %d, got %d", MinTopProducts, MaxTopProducts, n)
	}
	return nil
}
