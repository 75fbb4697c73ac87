package ratesource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/salesops/sales_etl_app/internal/adapters/ratesource"
	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_ParsesPublishedRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024-01-05", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-01-05","rates":{"EUR":0.92,"GBP":0.79}}`))
	}))
	defer server.Close()

	client := ratesource.NewFrankfurterClient(server.URL, 5*time.Second)
	rates, err := client.FetchRates(context.Background(), "2024-01-05")

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates["EUR"].Equal(decimal.NewFromFloat(0.92)))
	assert.True(t, rates["GBP"].Equal(decimal.NewFromFloat(0.79)))
}

func TestFetchRates_PreservesPublishedPrecision(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-01-05","rates":{"IDR":15616.123456789012345678}}`))
	}))
	defer server.Close()

	client := ratesource.NewFrankfurterClient(server.URL, 5*time.Second)
	rates, err := client.FetchRates(context.Background(), "2024-01-05")

	require.NoError(t, err)
	want, err := decimal.NewFromString("15616.123456789012345678")
	require.NoError(t, err)
	assert.True(t, rates["IDR"].Equal(want), "rate lost precision: got %s", rates["IDR"])
}

func TestFetchRates_NonSuccessStatusIsExternalSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := ratesource.NewFrankfurterClient(server.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "1800-01-01")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExternalSource))
}

func TestFetchRates_UnreachableSourceIsExternalSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable on purpose

	client := ratesource.NewFrankfurterClient(server.URL, time.Second)
	_, err := client.FetchRates(context.Background(), "2024-01-05")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExternalSource))
}

func TestFetchRates_MalformedBodyIsExternalSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := ratesource.NewFrankfurterClient(server.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "2024-01-05")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExternalSource))
}
