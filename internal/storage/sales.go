package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/Veraticus/bizmetrics/internal/service"
	"github.com/google/uuid"
)

const saleColumns = `id, owner_id, sale_date, product_name, amount_cents, batch_id, created_at`

var sortColumns = map[service.SalesSortField]string{
	service.SortBySaleDate:    "sale_date",
	service.SortByProductName: "product_name",
	service.SortByAmount:      "amount_cents",
}

func (s *SQLiteStorage) insertSalesTx(ctx context.Context, tx *sql.Tx, sales []model.SaleRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range sales {
		sale := &sales[i]
		if sale.ID == "" {
			sale.ID = uuid.NewString()
		}

		var createdAt string
		sale.CreatedAt, createdAt = s.timestamp(sale.CreatedAt)

		_, err = stmt.ExecContext(ctx,
			sale.ID,
			sale.OwnerID,
			sale.Date,
			sale.ProductName,
			model.Cents(sale.Amount),
			nullString(sale.BatchID),
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale %s: %w", sale.ID, err)
		}
	}

	return nil
}

// QuerySales returns every sale matching filter in stored order.
func (s *SQLiteStorage) QuerySales(ctx context.Context, filter service.SalesFilter) ([]model.SaleRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	where, args, err := salesWhere(filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + saleColumns + ` FROM sales WHERE ` + where + ` ORDER BY sale_date ASC, rowid ASC`
	return querySales(ctx, s.db, query, args...)
}

// CountSales returns the number of sales matching filter.
func (s *SQLiteStorage) CountSales(ctx context.Context, filter service.SalesFilter) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	where, args, err := salesWhere(filter)
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales WHERE `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

// ListSalesPage returns one sorted page of sales.
func (s *SQLiteStorage) ListSalesPage(ctx context.Context, query service.SalesPageQuery) ([]model.SaleRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	where, args, err := salesWhere(query.Filter)
	if err != nil {
		return nil, err
	}

	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = sortColumns[service.SortBySaleDate]
	}
	direction := "DESC"
	if query.Order == service.SortAsc {
		direction = "ASC"
	}

	limit := query.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	sqlQuery := fmt.Sprintf(`SELECT %s FROM sales WHERE %s ORDER BY %s %s, rowid %s LIMIT ? OFFSET ?`,
		saleColumns, where, column, direction, direction)
	args = append(args, limit, query.Offset)

	return querySales(ctx, s.db, sqlQuery, args...)
}

func salesWhere(filter service.SalesFilter) (string, []any, error) {
	if err := validateString(filter.OwnerID, "ownerID"); err != nil {
		return "", nil, err
	}
	if err := validateDate(filter.DateFrom, "dateFrom"); err != nil {
		return "", nil, err
	}
	if err := validateDate(filter.DateTo, "dateTo"); err != nil {
		return "", nil, err
	}

	conditions := []string{"owner_id = ?"}
	args := []any{filter.OwnerID}

	if filter.DateFrom != "" {
		conditions = append(conditions, "sale_date >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		conditions = append(conditions, "sale_date <= ?")
		args = append(args, filter.DateTo)
	}
	if filter.BatchID != "" {
		conditions = append(conditions, "batch_id = ?")
		args = append(args, filter.BatchID)
	}
	if filter.Product != "" {
		conditions = append(conditions, `product_name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Product)+"%")
	}

	return strings.Join(conditions, " AND "), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func querySales(ctx context.Context, q queryable, query string, args ...any) ([]model.SaleRecord, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sales []model.SaleRecord
	for rows.Next() {
		var (
			sale      model.SaleRecord
			cents     int64
			batchID   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&sale.ID, &sale.OwnerID, &sale.Date, &sale.ProductName, &cents, &batchID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}

		sale.Amount = model.FromCents(cents)
		sale.BatchID = batchID.String
		if sale.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for sale %s: %w", sale.ID, err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return sales, nil
}

func countBatchSales(ctx context.Context, q queryable, batchID string) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales WHERE batch_id = ?`, batchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count batch sales: %w", err)
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
