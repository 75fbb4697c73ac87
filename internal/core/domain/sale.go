package domain

import (
	"github.com/shopspring/decimal"
)

// RawRecord is a single row of a sales extract exactly as it appears in the
// source file. All fields are kept as raw text; type coercion happens in the
// normalizer so that malformed values can be handled by policy instead of
// failing the read. An empty string means the column was empty or absent.
type RawRecord struct {
	OrderID       string
	AffiliateName string
	Category      string
	SalesAmount   string
	Currency      string
	OrderDate     string
}

// Default values applied to optional fields that arrive empty.
const (
	UnknownAffiliate      = "Unknown Affiliate"
	UncategorizedCategory = "Uncategorized"
)

// NormalizedSale is a cleaned sales row ready for loading. OrderDate is the
// ISO 8601 calendar day (YYYY-MM-DD). AmountUSD is null when no exchange rate
// resolved for (OrderDate, Currency); such rows are kept for diagnostics but
// are excluded at the store boundary.
type NormalizedSale struct {
	OrderID       int64               `json:"orderID"`
	AffiliateName string              `json:"affiliateName"`
	Category      string              `json:"category"`
	SalesAmount   decimal.Decimal     `json:"salesAmount"`
	Currency      string              `json:"currency"`
	OrderDate     string              `json:"orderDate"`
	AmountUSD     decimal.NullDecimal `json:"amountUSD"`
}

// RateKey identifies the sale's exchange rate.
func (s NormalizedSale) RateKey() RateKey {
	return RateKey{Date: s.OrderDate, Currency: s.Currency}
}
