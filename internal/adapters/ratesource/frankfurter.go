package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/salesops/sales_etl_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

var _ ports.RateSource = (*FrankfurterClient)(nil)

const defaultBaseURL = "https://api.frankfurter.app"

// FrankfurterClient fetches historical exchange rates versus USD from the
// Frankfurter API. One request per calendar day returns every published
// currency for that day.
type FrankfurterClient struct {
	baseURL string
	client  *resty.Client
}

// Rates are decoded as json.Number so the published decimal strings reach
// decimal.NewFromString without a float64 round trip.
type frankfurterResponse struct {
	Base  string                 `json:"base"`
	Date  string                 `json:"date"`
	Rates map[string]json.Number `json:"rates"`
}

// NewFrankfurterClient creates a client against the given base URL; an empty
// baseURL selects the public API.
func NewFrankfurterClient(baseURL string, timeout time.Duration) *FrankfurterClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New()
	client.SetTimeout(timeout)

	return &FrankfurterClient{
		baseURL: baseURL,
		client:  client,
	}
}

// FetchRates returns currency -> rate pairs against a USD base for the given
// day (YYYY-MM-DD). Transport failures and non-success statuses surface as
// errors wrapping apperrors.ErrExternalSource; the caller treats either as
// fatal for the whole batch.
func (c *FrankfurterClient) FetchRates(ctx context.Context, date string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s?from=USD", c.baseURL, date)

	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", apperrors.ErrExternalSource, url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned status %d", apperrors.ErrExternalSource, url, resp.StatusCode())
	}

	var body frankfurterResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: decoding response from %s: %v", apperrors.ErrExternalSource, url, err)
	}

	rates := make(map[string]decimal.Decimal, len(body.Rates))
	for currency, raw := range body.Rates {
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid rate %q for %s from %s: %v", apperrors.ErrExternalSource, raw.String(), currency, url, err)
		}
		rates[currency] = rate
	}
	return rates, nil
}
