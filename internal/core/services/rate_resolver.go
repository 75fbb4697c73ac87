package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

var _ ports.RateResolverSvc = (*RateResolverService)(nil)

// RateResolverService builds a per-(date, currency) rate table from the
// external rate source. It is stateless and performs no caching across
// calls: every invocation re-queries the source.
type RateResolverService struct {
	source ports.RateSource
	logger *slog.Logger
}

// NewRateResolverService creates a new RateResolverService.
func NewRateResolverService(source ports.RateSource, logger *slog.Logger) *RateResolverService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateResolverService{source: source, logger: logger}
}

// ResolveRates queries the source once per distinct date (the source returns
// all currencies for a day in one call) and unions the result with the
// synthetic (date, "USD") -> 1 entry the source never publishes. Any single
// date's failure aborts the whole batch with no partial table.
func (s *RateResolverService) ResolveRates(ctx context.Context, dates []string) (domain.RateTable, error) {
	distinct := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if d == "" {
			continue
		}
		distinct[d] = struct{}{}
	}
	ordered := make([]string, 0, len(distinct))
	for d := range distinct {
		ordered = append(ordered, d)
	}
	sort.Strings(ordered)

	table := make(domain.RateTable, len(ordered))
	one := decimal.NewFromInt(1)
	for _, date := range ordered {
		rates, err := s.source.FetchRates(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("resolving rates for %s: %w", date, err)
		}
		for currency, rate := range rates {
			// The source must never publish a non-positive rate; treat it as
			// a source error rather than divide by it later.
			if rate.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: non-positive rate %s for (%s, %s)", apperrors.ErrExternalSource, rate, date, currency)
			}
			table[domain.RateKey{Date: date, Currency: currency}] = rate
		}
		table[domain.RateKey{Date: date, Currency: "USD"}] = one
		s.logger.Debug("Resolved rates for date", slog.String("date", date), slog.Int("currencies", len(rates)+1))
	}
	return table, nil
}
