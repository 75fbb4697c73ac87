package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) TotalsByAffiliateCategory(ctx context.Context, filter domain.ReportFilter) ([]domain.AffiliateCategoryTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AffiliateCategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) MonthlySummary(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTotal), args.Error(1)
}

func TestReportingService_TotalsByAffiliateCategory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	filter := domain.ReportFilter{From: "2024-01-01", To: "2024-03-31"}
	expected := []domain.AffiliateCategoryTotal{
		{AffiliateName: "Bob White", Category: "Electronics", TotalUSD: decimal.RequireFromString("163.04")},
	}
	repo.On("TotalsByAffiliateCategory", ctx, filter).Return(expected, nil).Once()

	totals, err := svc.TotalsByAffiliateCategory(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, expected, totals)
	repo.AssertExpectations(t)
}

func TestReportingService_RejectsMalformedDateBound(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	_, err := svc.MonthlySummary(context.Background(), domain.ReportFilter{From: "01/05/2024"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	repo.AssertNotCalled(t, "MonthlySummary", mock.Anything, mock.Anything)
}

func TestReportingService_RejectsInvertedWindow(t *testing.T) {
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	_, err := svc.TotalsByAffiliateCategory(context.Background(), domain.ReportFilter{From: "2024-02-01", To: "2024-01-01"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestReportingService_MonthlySummaryPassThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	svc := services.NewReportingService(repo)

	expected := []domain.MonthlyTotal{
		{Month: "2024-01", TotalUSD: decimal.RequireFromString("500.10"), OrderCount: 7},
	}
	repo.On("MonthlySummary", ctx, domain.ReportFilter{}).Return(expected, nil).Once()

	totals, err := svc.MonthlySummary(ctx, domain.ReportFilter{})

	require.NoError(t, err)
	assert.Equal(t, expected, totals)
}
