package services

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

var _ ports.NormalizerSvc = (*NormalizerService)(nil)

// NormalizerService cleans raw extract rows: type coercion, critical-field
// drops, optional-field defaults, the rate join and exact-duplicate removal.
// Rows whose (date, currency) pair has no rate are still emitted with a null
// USD amount; excluding them is the store boundary's job.
type NormalizerService struct {
	logger *slog.Logger
}

// NewNormalizerService creates a new NormalizerService.
func NewNormalizerService(logger *slog.Logger) *NormalizerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NormalizerService{logger: logger}
}

// acceptedDateLayouts mirrors the tolerant date coercion of the extract
// producers: plain calendar days and full timestamps both resolve to a day.
var acceptedDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// coerceDate parses a raw order date into its ISO 8601 day form. The second
// return is false when the value is missing or malformed.
func coerceDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}

// coerceAmount parses a raw sales amount. Missing or malformed values return
// false rather than zero.
func coerceAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// DistinctOrderDates returns the sorted distinct set of parseable order
// dates in the raw rows, in ISO 8601 day form. Rows with malformed dates
// contribute nothing; they will be dropped by Normalize anyway.
func (s *NormalizerService) DistinctOrderDates(raw []domain.RawRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range raw {
		if day, ok := coerceDate(rec.OrderDate); ok {
			seen[day] = struct{}{}
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Normalize applies the cleansing steps in order, each operating on the
// survivors of the previous one. Output order follows input order with exact
// duplicates collapsed to their first occurrence.
func (s *NormalizerService) Normalize(raw []domain.RawRecord, rates domain.RateTable) []domain.NormalizedSale {
	out := make([]domain.NormalizedSale, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, rec := range raw {
		amount, amountOK := coerceAmount(rec.SalesAmount)
		day, dateOK := coerceDate(rec.OrderDate)
		currency := strings.ToUpper(strings.TrimSpace(rec.Currency))

		// Rows missing any critical field cannot be normalized or attributed.
		if !amountOK || !dateOK || currency == "" {
			s.logger.Debug("Dropping row with missing critical field",
				slog.String("order_id", rec.OrderID),
				slog.Bool("has_amount", amountOK),
				slog.Bool("has_date", dateOK),
				slog.Bool("has_currency", currency != ""),
			)
			continue
		}

		orderID, err := strconv.ParseInt(strings.TrimSpace(rec.OrderID), 10, 64)
		if err != nil {
			// An order without a usable identifier cannot be keyed in the
			// store; treat it like any other unparseable critical field.
			s.logger.Debug("Dropping row with malformed order id", slog.String("order_id", rec.OrderID))
			continue
		}

		affiliate := strings.TrimSpace(rec.AffiliateName)
		if affiliate == "" {
			affiliate = domain.UnknownAffiliate
		}
		category := strings.TrimSpace(rec.Category)
		if category == "" {
			category = domain.UncategorizedCategory
		}

		sale := domain.NormalizedSale{
			OrderID:       orderID,
			AffiliateName: affiliate,
			Category:      category,
			SalesAmount:   amount,
			Currency:      currency,
			OrderDate:     day,
		}

		if rate, ok := rates.Lookup(sale.RateKey()); ok {
			sale.AmountUSD = decimal.NullDecimal{Decimal: amount.Div(rate), Valid: true}
		}

		key := dedupKey(sale)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sale)
	}
	return out
}

// dedupKey builds the identity of a fully normalized row across all output
// fields, including the computed USD amount.
func dedupKey(s domain.NormalizedSale) string {
	usd := ""
	if s.AmountUSD.Valid {
		usd = s.AmountUSD.Decimal.String()
	}
	return strings.Join([]string{
		strconv.FormatInt(s.OrderID, 10),
		s.AffiliateName,
		s.Category,
		s.SalesAmount.String(),
		s.Currency,
		s.OrderDate,
		usd,
	}, "\x1f")
}
