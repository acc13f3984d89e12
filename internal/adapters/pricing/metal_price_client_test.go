package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimatic/zakapp-sub006/internal/platform/config"
)

func newTestClient(apiURL string, ttl time.Duration) *MetalPriceClient {
	return NewMetalPriceClient(&config.Config{
		MetalPriceAPIURL:           apiURL,
		MetalPriceCacheTTL:         ttl,
		FallbackGoldPricePerGram:   decimal.NewFromFloat(65.00),
		FallbackSilverPricePerGram: decimal.NewFromFloat(0.85),
	})
}

func TestMetalPriceClient_FetchAndCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "USD", r.URL.Query().Get("currency"))
		fmt.Fprint(w, `{"goldPerGram": "67.00", "silverPerGram": "0.90"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Hour)
	ctx := context.Background()

	gold, err := client.GetGoldPricePerGram(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, gold.Equal(decimal.NewFromFloat(67.00)))

	silver, err := client.GetSilverPricePerGram(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, silver.Equal(decimal.NewFromFloat(0.90)))

	// Second currency lookup hits the cache, not the API.
	assert.Equal(t, int32(1), hits.Load())
}

func TestMetalPriceClient_PerCurrencyCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("currency") == "EUR" {
			fmt.Fprint(w, `{"goldPerGram": "61.00", "silverPerGram": "0.80"}`)
			return
		}
		fmt.Fprint(w, `{"goldPerGram": "67.00", "silverPerGram": "0.90"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Hour)
	ctx := context.Background()

	usd, err := client.GetGoldPricePerGram(ctx, "USD")
	require.NoError(t, err)
	eur, err := client.GetGoldPricePerGram(ctx, "EUR")
	require.NoError(t, err)

	assert.True(t, usd.Equal(decimal.NewFromFloat(67.00)))
	assert.True(t, eur.Equal(decimal.NewFromFloat(61.00)))
}

func TestMetalPriceClient_StaleCacheServedOnFailure(t *testing.T) {
	var failing atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"goldPerGram": "67.00", "silverPerGram": "0.90"}`)
	}))
	defer server.Close()

	// Zero TTL: every call is a refresh attempt.
	client := newTestClient(server.URL, 0)
	ctx := context.Background()

	gold, err := client.GetGoldPricePerGram(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, gold.Equal(decimal.NewFromFloat(67.00)))

	failing.Store(true)

	gold, err = client.GetGoldPricePerGram(ctx, "USD")
	require.NoError(t, err)
	// The last good price survives the outage.
	assert.True(t, gold.Equal(decimal.NewFromFloat(67.00)))
}

func TestMetalPriceClient_FallbackOnColdFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Hour)
	ctx := context.Background()

	gold, err := client.GetGoldPricePerGram(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, gold.Equal(decimal.NewFromFloat(65.00)))

	silver, err := client.GetSilverPricePerGram(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, silver.Equal(decimal.NewFromFloat(0.85)))
}

func TestMetalPriceClient_NonPositivePricesRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"goldPerGram": "0", "silverPerGram": "0.90"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Hour)

	gold, err := client.GetGoldPricePerGram(context.Background(), "USD")
	require.NoError(t, err)
	// A zero quote is treated as a failed fetch and the fallback is served.
	assert.True(t, gold.Equal(decimal.NewFromFloat(65.00)))
}

func TestMetalPriceClient_NoAPIConfigured(t *testing.T) {
	client := newTestClient("", time.Hour)

	gold, err := client.GetGoldPricePerGram(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, gold.Equal(decimal.NewFromFloat(65.00)))
}
