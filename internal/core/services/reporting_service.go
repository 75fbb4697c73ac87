package services

import (
	"context"
	"fmt"
	"time"

	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
)

var _ ports.ReportingSvcFacade = (*ReportingService)(nil)

// ReportingService provides read-only sales-in-USD aggregations.
type ReportingService struct {
	repo ports.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(repo ports.ReportingRepository) *ReportingService {
	return &ReportingService{repo: repo}
}

// TotalsByAffiliateCategory returns USD totals grouped by affiliate and
// category within the filter window.
func (s *ReportingService) TotalsByAffiliateCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.AffiliateCategoryTotal, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.TotalsByAffiliateCategory(ctx, filter)
}

// MonthlySummary returns USD totals and order counts bucketed by month
// within the filter window.
func (s *ReportingService) MonthlySummary(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.MonthlySummary(ctx, filter)
}

func validateFilter(filter domain.ReportFilter) error {
	for _, bound := range []string{filter.From, filter.To} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, bound); err != nil {
			return fmt.Errorf("%w: date bound %q is not a calendar day", apperrors.ErrValidation, bound)
		}
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return fmt.Errorf("%w: 'from' is after 'to'", apperrors.ErrValidation)
	}
	return nil
}
