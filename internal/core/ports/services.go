package ports

import (
	"context"

	"github.com/salesops/sales_etl_app/internal/core/domain"
)

// RateResolverSvc derives the rate table for a set of calendar days.
type RateResolverSvc interface {
	ResolveRates(ctx context.Context, dates []string) (domain.RateTable, error)
}

// NormalizerSvc cleans raw extract rows against a rate table.
type NormalizerSvc interface {
	DistinctOrderDates(raw []domain.RawRecord) []string
	Normalize(raw []domain.RawRecord, rates domain.RateTable) []domain.NormalizedSale
}

// PipelineSvc runs the full ledger-check/fetch/normalize/load sequence for
// one extract file.
type PipelineSvc interface {
	Run(ctx context.Context, path string) (*domain.RunResult, error)
}

// ReportingSvcFacade exposes sales-in-USD aggregations to the API surface.
type ReportingSvcFacade interface {
	TotalsByAffiliateCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.AffiliateCategoryTotal, error)
	MonthlySummary(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error)
}
