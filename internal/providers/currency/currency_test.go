package currency

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/providers"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	c, err := New(providers.Config{BaseURL: srv.URL + "/v6", APIKey: "test-key"})
	require.NoError(t, err)
	return c, &calls
}

func TestConvert(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/test-key/pair/USD/ZAR", r.URL.Path)
		_, _ = w.Write([]byte(`{"result":"success","conversion_rate":18.5}`))
	})

	got, err := c.Convert(context.Background(), "south africa", 100, "usd")
	require.NoError(t, err)
	assert.Equal(t, &Conversion{
		Country:      "south africa",
		From:         "100.00 USD",
		To:           "1850.00 ZAR",
		ExchangeRate: 18.5,
	}, got)
}

func TestConvertUnknownCountryDefaultsToUSD(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/test-key/pair/EUR/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{"result":"success","conversion_rate":1.1}`))
	})
	got, err := c.Convert(context.Background(), "Atlantis", 10, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "11.00 USD", got.To)
}

func TestConvertRejectsBadInputWithoutCalling(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","conversion_rate":1}`))
	})
	for _, amount := range []float64{0, -5, math.NaN()} {
		_, err := c.Convert(context.Background(), "France", amount, "USD")
		assert.Equal(t, providers.ErrorInvalidInput, providers.GetCategory(err), "amount %v", amount)
	}
	_, err := c.Convert(context.Background(), "France", 10, "  ")
	assert.Equal(t, providers.ErrorInvalidInput, providers.GetCategory(err))
	assert.Zero(t, calls.Load())
}

func TestConvertUpstreamFailureResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	})
	_, err := c.Convert(context.Background(), "France", 10, "XXX")
	require.Error(t, err)
	assert.Equal(t, providers.ErrorProtocol, providers.GetCategory(err))
	assert.Contains(t, err.Error(), "unsupported-code")
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(providers.Config{BaseURL: "https://example.test"})
	assert.Equal(t, providers.ErrorNotConfigured, providers.GetCategory(err))
}

func TestCurrencyFor(t *testing.T) {
	assert.Equal(t, "ZAR", CurrencyFor("South Africa"))
	assert.Equal(t, "GBP", CurrencyFor("  united   kingdom"))
	assert.Equal(t, DefaultCurrency, CurrencyFor("Atlantis"))
}
