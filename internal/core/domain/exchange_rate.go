package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RateKey is the natural key of an exchange rate: one calendar day and one
// currency code. Date is an ISO 8601 day (YYYY-MM-DD); Currency is uppercase.
type RateKey struct {
	Date     string `json:"date"`
	Currency string `json:"currency"`
}

// ExchangeRate is the conversion rate for one (date, currency) pair, meaning
// "1 USD = Rate units of Currency". A surrogate ID is assigned by the store
// on first insert; rates are immutable once stored.
type ExchangeRate struct {
	ID       int64           `json:"id"`
	Date     string          `json:"date"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// RateTable maps (date, currency) to the rate converting that currency to
// USD. It always contains the synthetic (date, "USD") -> 1 entry for every
// date it covers.
type RateTable map[RateKey]decimal.Decimal

// Lookup returns the rate for the given key and whether it exists.
func (t RateTable) Lookup(key RateKey) (decimal.Decimal, bool) {
	rate, ok := t[key]
	return rate, ok
}

// Keys returns all keys sorted by date then currency, so that store writes
// happen in a deterministic order.
func (t RateTable) Keys() []RateKey {
	keys := make([]RateKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].Currency < keys[j].Currency
	})
	return keys
}
