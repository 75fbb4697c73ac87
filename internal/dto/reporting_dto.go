package dto

import (
	"github.com/salesops/sales_etl_app/internal/core/domain"
)

// ReportWindowQuery bounds a report to an order-date window. Both bounds are
// optional ISO 8601 days.
type ReportWindowQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilter maps the query to the domain filter.
func (q ReportWindowQuery) ToFilter() domain.ReportFilter {
	return domain.ReportFilter{From: q.From, To: q.To}
}

// AffiliateCategoryTotalResponse is one row of the affiliate/category report.
type AffiliateCategoryTotalResponse struct {
	AffiliateName string `json:"affiliateName"`
	Category      string `json:"category"`
	TotalUSD      string `json:"totalUSD"`
}

// MonthlyTotalResponse is one row of the monthly report.
type MonthlyTotalResponse struct {
	Month      string `json:"month"`
	TotalUSD   string `json:"totalUSD"`
	OrderCount int64  `json:"orderCount"`
}

// ToAffiliateCategoryResponse rounds totals to cents for presentation.
func ToAffiliateCategoryResponse(totals []domain.AffiliateCategoryTotal) []AffiliateCategoryTotalResponse {
	out := make([]AffiliateCategoryTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = AffiliateCategoryTotalResponse{
			AffiliateName: t.AffiliateName,
			Category:      t.Category,
			TotalUSD:      t.TotalUSD.Round(2).String(),
		}
	}
	return out
}

// ToMonthlyResponse rounds totals to cents for presentation.
func ToMonthlyResponse(totals []domain.MonthlyTotal) []MonthlyTotalResponse {
	out := make([]MonthlyTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = MonthlyTotalResponse{
			Month:      t.Month,
			TotalUSD:   t.TotalUSD.Round(2).String(),
			OrderCount: t.OrderCount,
		}
	}
	return out
}
