package ports

import (
	"context"

	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource is the external exchange-rate collaborator. FetchRates returns
// every currency->rate pair the source publishes against a USD base for one
// calendar day (YYYY-MM-DD). Transport or status failures surface as errors
// wrapping apperrors.ErrExternalSource; retries, if any, belong to the
// implementation, not to callers.
type RateSource interface {
	FetchRates(ctx context.Context, date string) (map[string]decimal.Decimal, error)
}

// ExtractReader reads one source extract into raw records without applying
// any type coercion.
type ExtractReader interface {
	ReadExtract(ctx context.Context, path string) ([]domain.RawRecord, error)
}

// ProcessingLedger tracks which extracts have been fully loaded. IsProcessed
// is true only for an exact fingerprint match; MarkProcessed overwrites any
// prior entry for the file name. Single active writer is assumed.
type ProcessingLedger interface {
	IsProcessed(identity domain.FileIdentity) (bool, error)
	MarkProcessed(identity domain.FileIdentity) error
}
