package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

var _ ports.ReportingRepository = (*PgxReportingRepository)(nil)

// PgxReportingRepository implements ports.ReportingRepository. USD amounts
// are computed in SQL as sales_amount / rate on the joined exchange rate, so
// reports always reflect the rate each sale was loaded against.
type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportingRepository creates a new repository for reporting queries.
func NewPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// windowClause builds the optional order-date bounds. Argument numbering
// starts at $1.
func windowClause(filter domain.ReportFilter) (string, []interface{}) {
	clause := ""
	args := []interface{}{}
	if filter.From != "" {
		args = append(args, filter.From)
		clause += fmt.Sprintf(" AND s.order_date >= $%d::date", len(args))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		clause += fmt.Sprintf(" AND s.order_date <= $%d::date", len(args))
	}
	return clause, args
}

// TotalsByAffiliateCategory aggregates sales in USD by affiliate and category.
func (r *PgxReportingRepository) TotalsByAffiliateCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.AffiliateCategoryTotal, error) {
	clause, args := windowClause(filter)
	query := `
		SELECT s.affiliate_name, s.category, SUM(s.sales_amount / er.rate) AS total_usd
		FROM sales s
		JOIN exchange_rates er ON s.exchange_rate_id = er.id
		WHERE 1=1` + clause + `
		GROUP BY s.affiliate_name, s.category
		ORDER BY s.affiliate_name, s.category;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("failed to query affiliate/category totals", err)
	}
	defer rows.Close()

	var totals []domain.AffiliateCategoryTotal
	for rows.Next() {
		var t domain.AffiliateCategoryTotal
		if err := rows.Scan(&t.AffiliateName, &t.Category, &t.TotalUSD); err != nil {
			return nil, storeErr("failed to scan affiliate/category total", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating affiliate/category totals", err)
	}
	return totals, nil
}

// MonthlySummary aggregates USD totals and order counts per calendar month.
func (r *PgxReportingRepository) MonthlySummary(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error) {
	clause, args := windowClause(filter)
	query := `
		SELECT to_char(date_trunc('month', s.order_date), 'YYYY-MM') AS order_month,
		       SUM(s.sales_amount / er.rate) AS total_usd,
		       COUNT(*) AS order_count
		FROM sales s
		JOIN exchange_rates er ON s.exchange_rate_id = er.id
		WHERE 1=1` + clause + `
		GROUP BY order_month
		ORDER BY order_month;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("failed to query monthly summary", err)
	}
	defer rows.Close()

	var totals []domain.MonthlyTotal
	for rows.Next() {
		var t domain.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.TotalUSD, &t.OrderCount); err != nil {
			return nil, storeErr("failed to scan monthly summary row", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating monthly summary", err)
	}
	return totals, nil
}
