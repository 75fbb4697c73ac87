package services_test

import (
	"testing"

	"github.com/salesops/sales_etl_app/internal/core/domain"
	"github.com/salesops/sales_etl_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type NormalizerTestSuite struct {
	suite.Suite
	normalizer *services.NormalizerService
}

func (suite *NormalizerTestSuite) SetupTest() {
	suite.normalizer = services.NewNormalizerService(nil)
}

func rawRow(orderID, affiliate, category, amount, currency, date string) domain.RawRecord {
	return domain.RawRecord{
		OrderID:       orderID,
		AffiliateName: affiliate,
		Category:      category,
		SalesAmount:   amount,
		Currency:      currency,
		OrderDate:     date,
	}
}

func ratesFor(date string, pairs map[string]string) domain.RateTable {
	table := domain.RateTable{}
	for currency, rate := range pairs {
		table[domain.RateKey{Date: date, Currency: currency}] = decimal.RequireFromString(rate)
	}
	table[domain.RateKey{Date: date, Currency: "USD"}] = decimal.NewFromInt(1)
	return table
}

func (suite *NormalizerTestSuite) TestDropsRowsMissingCriticalFields() {
	rates := ratesFor("2024-01-05", map[string]string{"EUR": "0.92"})

	raw := []domain.RawRecord{
		rawRow("101", "Bob White", "Electronics", "150", "EUR", "2024-01-05"),
		rawRow("102", "AnnEy", "Books", "", "EUR", "2024-01-05"),         // missing amount
		rawRow("103", "Ann Ey", "Books", "not-a-number", "EUR", "2024-01-05"), // malformed amount
		rawRow("104", "Cee Dee", "Toys", "12.50", "EUR", ""),              // missing date
		rawRow("105", "Dee Eff", "Toys", "12.50", "EUR", "2024-01-05"),
		rawRow("106", "Eff Gee", "Garden", "99", "EUR", "2024-01-05"),
		rawRow("107", "Gee Aych", "Garden", "42", "USD", "2024-01-05"),
		rawRow("108", "", "", "10", "USD", "2024-01-05"),
		rawRow("109", "Jay Kay", "Home", "77", "EUR", "2024-01-05"),
		rawRow("110", "Kay El", "Home", "5", "EUR", "2024-01-05"),
	}

	cleaned := suite.normalizer.Normalize(raw, rates)

	suite.Require().Len(cleaned, 7)
	ids := make([]int64, 0, len(cleaned))
	for _, sale := range cleaned {
		ids = append(ids, sale.OrderID)
	}
	suite.ElementsMatch([]int64{101, 105, 106, 107, 108, 109, 110}, ids)
}

func (suite *NormalizerTestSuite) TestOptionalFieldsGetSentinelDefaults() {
	rates := ratesFor("2024-01-05", nil)

	cleaned := suite.normalizer.Normalize([]domain.RawRecord{
		rawRow("200", "", "", "10", "USD", "2024-01-05"),
		rawRow("201", "  ", "  ", "20", "USD", "2024-01-05"),
	}, rates)

	suite.Require().Len(cleaned, 2)
	for _, sale := range cleaned {
		suite.Equal(domain.UnknownAffiliate, sale.AffiliateName)
		suite.Equal(domain.UncategorizedCategory, sale.Category)
	}
}

func (suite *NormalizerTestSuite) TestComputesUSDAmountFromRate() {
	rates := ratesFor("2024-01-05", map[string]string{"EUR": "0.92"})

	cleaned := suite.normalizer.Normalize([]domain.RawRecord{
		rawRow("101", "Bob White", "Electronics", "150", "EUR", "2024-01-05"),
	}, rates)

	suite.Require().Len(cleaned, 1)
	sale := cleaned[0]
	suite.Require().True(sale.AmountUSD.Valid)

	expected := decimal.NewFromInt(150).Div(decimal.RequireFromString("0.92"))
	suite.True(sale.AmountUSD.Decimal.Equal(expected), "got %s", sale.AmountUSD.Decimal)
	suite.Equal("163.04", sale.AmountUSD.Decimal.Round(2).String())
}

func (suite *NormalizerTestSuite) TestUnresolvedRateYieldsNullUSD() {
	rates := ratesFor("2024-01-05", nil) // only USD

	cleaned := suite.normalizer.Normalize([]domain.RawRecord{
		rawRow("300", "Bob White", "Electronics", "150", "GBP", "2024-01-05"),
	}, rates)

	// The row survives normalization; exclusion is the store boundary's job.
	suite.Require().Len(cleaned, 1)
	suite.False(cleaned[0].AmountUSD.Valid)
}

func (suite *NormalizerTestSuite) TestExactDuplicatesCollapse() {
	rates := ratesFor("2024-01-05", map[string]string{"EUR": "0.92"})

	cleaned := suite.normalizer.Normalize([]domain.RawRecord{
		rawRow("400", "Bob White", "Electronics", "150", "EUR", "2024-01-05"),
		rawRow("400", "Bob White", "Electronics", "150", "EUR", "2024-01-05"),
		rawRow("401", "Bob White", "Electronics", "150", "EUR", "2024-01-05"),
	}, rates)

	suite.Require().Len(cleaned, 2)
	suite.Equal(int64(400), cleaned[0].OrderID)
	suite.Equal(int64(401), cleaned[1].OrderID)
}

func (suite *NormalizerTestSuite) TestNormalizesDateAndCurrencyForms() {
	rates := ratesFor("2024-01-05", map[string]string{"EUR": "0.92"})

	cleaned := suite.normalizer.Normalize([]domain.RawRecord{
		rawRow("500", "Bob White", "Electronics", "10", "eur", "2024-01-05T13:45:00Z"),
	}, rates)

	suite.Require().Len(cleaned, 1)
	suite.Equal("2024-01-05", cleaned[0].OrderDate)
	suite.Equal("EUR", cleaned[0].Currency)
	suite.True(cleaned[0].AmountUSD.Valid)
}

func (suite *NormalizerTestSuite) TestMalformedOrderIDIsDropped() {
	rates := ratesFor("2024-01-05", nil)

	cleaned := suite.normalizer.Normalize([]domain.RawRecord{
		rawRow("abc", "Bob White", "Electronics", "10", "USD", "2024-01-05"),
	}, rates)

	suite.Empty(cleaned)
}

func (suite *NormalizerTestSuite) TestDistinctOrderDates() {
	raw := []domain.RawRecord{
		rawRow("1", "", "", "1", "USD", "2024-02-01"),
		rawRow("2", "", "", "1", "USD", "2024-01-05"),
		rawRow("3", "", "", "1", "USD", "2024-02-01"),
		rawRow("4", "", "", "1", "USD", "garbage"),
		rawRow("5", "", "", "1", "USD", ""),
	}

	dates := suite.normalizer.DistinctOrderDates(raw)
	suite.Equal([]string{"2024-01-05", "2024-02-01"}, dates)
}

func TestNormalizerTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}
