package pgsql

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/salesops/sales_etl_app/internal/core/domain"
)

// rowExecer is the slice of pgx.Tx the per-row insert needs. Keeping the
// dependency this narrow lets the outcome classification run against a stub.
type rowExecer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// insertSales writes sale rows one by one inside the batch transaction,
// recording an explicit outcome per attempted row. Rows whose order ID
// already exists and rows whose rate key has no surrogate identifier are
// skipped with a diagnostic; neither aborts the rest of the batch.
func (s *PgxSalesStore) insertSales(ctx context.Context, db rowExecer, sales []domain.NormalizedSale, rateIDs map[domain.RateKey]int64) ([]domain.LoadOutcome, error) {
	const query = `
		INSERT INTO sales (
			order_id, affiliate_name, category, sales_amount, currency, order_date, exchange_rate_id
		) VALUES ($1, $2, $3, $4, $5, $6::date, $7)
		ON CONFLICT (order_id) DO NOTHING;
	`

	outcomes := make([]domain.LoadOutcome, 0, len(sales))
	for _, sale := range sales {
		rateID, ok := rateIDs[sale.RateKey()]
		if !ok {
			s.logger.Warn("Skipping sale with unresolved exchange rate",
				slog.Int64("order_id", sale.OrderID),
				slog.String("order_date", sale.OrderDate),
				slog.String("currency", sale.Currency),
			)
			outcomes = append(outcomes, domain.LoadOutcome{OrderID: sale.OrderID, Status: domain.LoadSkippedUnresolvedRate})
			continue
		}

		tag, err := db.Exec(ctx, query,
			sale.OrderID,
			sale.AffiliateName,
			sale.Category,
			sale.SalesAmount,
			sale.Currency,
			sale.OrderDate,
			rateID,
		)
		if err != nil {
			return nil, storeErr("failed to insert sale", err)
		}

		if tag.RowsAffected() == 0 {
			s.logger.Warn("Skipping sale with duplicate order id", slog.Int64("order_id", sale.OrderID))
			outcomes = append(outcomes, domain.LoadOutcome{OrderID: sale.OrderID, Status: domain.LoadSkippedDuplicate})
			continue
		}
		outcomes = append(outcomes, domain.LoadOutcome{OrderID: sale.OrderID, Status: domain.LoadInserted})
	}
	return outcomes, nil
}
