package pgsql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

// Ensure the store satisfies its port.
var _ ports.SalesStore = (*PgxSalesStore)(nil)

// PgxSalesStore implements the ports.SalesStore interface using pgxpool. It
// owns the exchange_rates and sales tables and writes both inside one
// transaction per extract file.
type PgxSalesStore struct {
	BaseRepository
	logger *slog.Logger
}

// NewPgxSalesStore creates a new PgxSalesStore.
func NewPgxSalesStore(pool *pgxpool.Pool, logger *slog.Logger) *PgxSalesStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PgxSalesStore{
		BaseRepository: BaseRepository{Pool: pool},
		logger:         logger,
	}
}

// LoadBatch persists one file's rates and sales atomically: insert-if-absent
// for every rate, resolve surrogate IDs for the sales' rate keys, then
// insert the sales recording a per-row outcome. Either the whole file
// commits (with intentionally skipped rows reported in the summary) or the
// transaction rolls back on a connection-level failure.
func (s *PgxSalesStore) LoadBatch(ctx context.Context, rates domain.RateTable, sales []domain.NormalizedSale) (domain.LoadSummary, error) {
	var summary domain.LoadSummary

	tx, err := s.Begin(ctx)
	if err != nil {
		return summary, err
	}
	defer func() {
		_ = s.Rollback(ctx, tx)
	}()

	ratesInserted, err := s.upsertRates(ctx, tx, rates)
	if err != nil {
		return summary, err
	}

	rateIDs, err := s.resolveRateIDs(ctx, tx, rates.Keys())
	if err != nil {
		return summary, err
	}

	outcomes, err := s.insertSales(ctx, tx, sales, rateIDs)
	if err != nil {
		return summary, err
	}

	if err := s.Commit(ctx, tx); err != nil {
		return summary, err
	}

	summary.RatesInserted = ratesInserted
	summary.Outcomes = outcomes
	return summary, nil
}

// ResolveRateIDs returns the surrogate identifier for each requested
// (date, currency) key that exists in the store. Keys with no stored rate
// are simply absent from the result.
func (s *PgxSalesStore) ResolveRateIDs(ctx context.Context, keys []domain.RateKey) (map[domain.RateKey]int64, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = s.Rollback(ctx, tx)
	}()

	ids, err := s.resolveRateIDs(ctx, tx, keys)
	if err != nil {
		return nil, err
	}
	if err := s.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return ids, nil
}

func storeErr(action string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStoreConnection, action, err)
}
