package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesops/sales_etl_app/internal/core/domain"
)

// batchSender is the slice of pgx.Tx the rate upsert needs. Narrowing it
// keeps the inserted-count accounting testable against a stub.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// upsertRates inserts every (date, currency, rate) triple that is not
// already present, batched into a single round trip. Stored rates are
// immutable, so conflicts on the natural key are ignored rather than
// updated. Returns the number of rows actually inserted.
func (s *PgxSalesStore) upsertRates(ctx context.Context, db batchSender, rates domain.RateTable) (int, error) {
	const query = `
		INSERT INTO exchange_rates (date, currency, rate)
		VALUES ($1::date, $2, $3)
		ON CONFLICT (date, currency) DO NOTHING;
	`

	keys := rates.Keys()
	if len(keys) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, key := range keys {
		batch.Queue(query, key.Date, key.Currency, rates[key])
	}

	results := db.SendBatch(ctx, batch)
	inserted := 0
	for range keys {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, storeErr("failed to insert exchange rate", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, storeErr("failed to close exchange rate batch", err)
	}
	return inserted, nil
}

// resolveRateIDs maps each requested (date, currency) key to its surrogate
// identifier. Lookup is bounded to the requested dates; keys with no stored
// rate are absent from the result.
func (s *PgxSalesStore) resolveRateIDs(ctx context.Context, tx pgx.Tx, keys []domain.RateKey) (map[domain.RateKey]int64, error) {
	ids := make(map[domain.RateKey]int64, len(keys))
	if len(keys) == 0 {
		return ids, nil
	}

	dateSet := make(map[string]struct{}, len(keys))
	dates := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := dateSet[key.Date]; ok {
			continue
		}
		dateSet[key.Date] = struct{}{}
		dates = append(dates, key.Date)
	}

	const query = `
		SELECT id, date, currency
		FROM exchange_rates
		WHERE date = ANY($1::date[]);
	`

	rows, err := tx.Query(ctx, query, dates)
	if err != nil {
		return nil, storeErr("failed to resolve exchange rate ids", err)
	}
	defer rows.Close()

	wanted := make(map[domain.RateKey]struct{}, len(keys))
	for _, key := range keys {
		wanted[key] = struct{}{}
	}

	for rows.Next() {
		var (
			id       int64
			date     time.Time
			currency string
		)
		if err := rows.Scan(&id, &date, &currency); err != nil {
			return nil, storeErr("failed to scan exchange rate id", err)
		}
		key := domain.RateKey{Date: date.Format(time.DateOnly), Currency: currency}
		if _, ok := wanted[key]; ok {
			ids[key] = id
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating exchange rate ids", err)
	}
	return ids, nil
}
