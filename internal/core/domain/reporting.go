package domain

import (
	"github.com/shopspring/decimal"
)

// AffiliateCategoryTotal is one row of the sales-in-USD aggregation grouped
// by affiliate and category.
type AffiliateCategoryTotal struct {
	AffiliateName string          `json:"affiliateName"`
	Category      string          `json:"category"`
	TotalUSD      decimal.Decimal `json:"totalUSD"`
}

// MonthlyTotal is one row of the month-bucketed sales summary. Month is in
// YYYY-MM form.
type MonthlyTotal struct {
	Month      string          `json:"month"`
	TotalUSD   decimal.Decimal `json:"totalUSD"`
	OrderCount int64           `json:"orderCount"`
}

// ReportFilter bounds reporting queries to an order-date window. Zero values
// mean unbounded. Dates are ISO 8601 days.
type ReportFilter struct {
	From string `json:"from"`
	To   string `json:"to"`
}
