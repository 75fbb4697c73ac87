package ports

import (
	"context"

	"github.com/salesops/sales_etl_app/internal/core/domain"
)

// Note: Context is included for cancellation/timeouts on all store calls.

// SalesStore owns the exchange_rates and sales tables. LoadBatch runs one
// transaction per file: insert-if-absent for rates, resolve surrogate IDs,
// then insert sales with a per-row outcome. Individual constraint skips are
// reported in the summary, never as errors; connection or transaction
// failures abort the whole batch wrapping apperrors.ErrStoreConnection.
type SalesStore interface {
	LoadBatch(ctx context.Context, rates domain.RateTable, sales []domain.NormalizedSale) (domain.LoadSummary, error)
}

// ReportingRepository serves read-only aggregations over loaded sales,
// converting amounts to USD via the joined exchange rate.
type ReportingRepository interface {
	TotalsByAffiliateCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.AffiliateCategoryTotal, error)
	MonthlySummary(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error)
}
