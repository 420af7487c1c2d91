// Package storage provides the data persistence layer for the bizmetrics application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/bizmetrics/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidStatus    = errors.New("invalid batch status")
	ErrInvalidSale      = errors.New("invalid sale")
	ErrInvalidBatch     = errors.New("invalid batch")
	ErrInvalidAnalysis  = errors.New("invalid analysis")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateDate(s string, paramName string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return fmt.Errorf("%w: %s %q is not YYYY-MM-DD", ErrInvalidDateRange, paramName, s)
	}
	return nil
}

// validateSales validates a slice of sales.
func validateSales(sales []model.SaleRecord) error {
	if sales == nil {
		return fmt.Errorf("%w: sales", ErrNilParameter)
	}
	if len(sales) == 0 {
		return fmt.Errorf("%w: sales", ErrEmptySlice)
	}

	for i := range sales {
		if err := validateSale(&sales[i]); err != nil {
			return fmt.Errorf("sale at index %d: %w", i, err)
		}
	}
	return nil
}

// validateSale validates a single sale.
func validateSale(sale *model.SaleRecord) error {
	if sale.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidSale)
	}
	if err := validateDate(sale.Date, "date"); err != nil || sale.Date == "" {
		return fmt.Errorf("%w: bad date %q", ErrInvalidSale, sale.Date)
	}
	if sale.ProductName == "" {
		return fmt.Errorf("%w: missing product", ErrInvalidSale)
	}
	if !sale.Amount.IsPositive() || sale.Amount.GreaterThan(model.MaxAmount) {
		return fmt.Errorf("%w: amount %s out of range", ErrInvalidSale, sale.Amount)
	}
	if !sale.Amount.Equal(model.RoundMoney(sale.Amount)) {
		return fmt.Errorf("%w: amount %s is not rounded to the cent", ErrInvalidSale, sale.Amount)
	}
	return nil
}

// validateBatch validates a batch before insertion.
func validateBatch(batch *model.UploadBatch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch", ErrNilParameter)
	}
	if batch.OwnerID == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidBatch)
	}
	if !batch.Status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, batch.Status)
	}
	if batch.RecordCount < 0 || batch.TotalRevenue.IsNegative() {
		return fmt.Errorf("%w: negative totals", ErrInvalidBatch)
	}
	return nil
}

// validateAnalysis validates a cache entry before insertion.
func validateAnalysis(entry *model.AnalysisCacheEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: analysis", ErrNilParameter)
	}
	if entry.OwnerID == "" || entry.DataHash == "" {
		return fmt.Errorf("%w: owner and data hash are required", ErrInvalidAnalysis)
	}
	if strings.TrimSpace(entry.ResultText) == "" {
		return fmt.Errorf("%w: empty result text", ErrInvalidAnalysis)
	}
	return nil
}
