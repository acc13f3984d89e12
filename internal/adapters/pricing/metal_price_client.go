package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
	"github.com/slimatic/zakapp-sub006/internal/platform/config"
)

// cachedPrices holds one currency's metal prices with their fetch time.
type cachedPrices struct {
	goldPerGram   decimal.Decimal
	silverPerGram decimal.Decimal
	fetchedAt     time.Time
}

// MetalPriceClient resolves gold and silver prices per gram from an external
// HTTP API. Responses are cached per currency; on fetch failure the last
// cached price is served past its TTL, and the configured fallback prices
// cover the cold-start case. Price trouble is logged, never surfaced to the
// user as an error.
type MetalPriceClient struct {
	httpClient *http.Client
	apiURL     string
	cacheTTL   time.Duration

	fallbackGold   decimal.Decimal
	fallbackSilver decimal.Decimal

	mu    sync.RWMutex
	cache map[string]cachedPrices
}

// NewMetalPriceClient creates a price oracle from config.
func NewMetalPriceClient(cfg *config.Config) *MetalPriceClient {
	return &MetalPriceClient{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		apiURL:         cfg.MetalPriceAPIURL,
		cacheTTL:       cfg.MetalPriceCacheTTL,
		fallbackGold:   cfg.FallbackGoldPricePerGram,
		fallbackSilver: cfg.FallbackSilverPricePerGram,
		cache:          make(map[string]cachedPrices),
	}
}

var _ portssvc.PriceOracle = (*MetalPriceClient)(nil)

// metalPriceResponse is the wire format of the price API.
type metalPriceResponse struct {
	GoldPerGram   decimal.Decimal `json:"goldPerGram"`
	SilverPerGram decimal.Decimal `json:"silverPerGram"`
}

// GetGoldPricePerGram returns the gold price per gram in the currency.
func (c *MetalPriceClient) GetGoldPricePerGram(ctx context.Context, currency string) (decimal.Decimal, error) {
	prices := c.resolve(ctx, currency)
	return prices.goldPerGram, nil
}

// GetSilverPricePerGram returns the silver price per gram in the currency.
func (c *MetalPriceClient) GetSilverPricePerGram(ctx context.Context, currency string) (decimal.Decimal, error) {
	prices := c.resolve(ctx, currency)
	return prices.silverPerGram, nil
}

// resolve returns cached prices when fresh, refreshes them when stale, and
// degrades to stale-cache and then configured fallbacks when the fetch fails.
func (c *MetalPriceClient) resolve(ctx context.Context, currency string) cachedPrices {
	logger := middleware.GetLoggerFromCtx(ctx)

	c.mu.RLock()
	cached, ok := c.cache[currency]
	c.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < c.cacheTTL {
		return cached
	}

	fresh, err := c.fetch(ctx, currency)
	if err != nil {
		if ok {
			logger.Warn("Metal price fetch failed, serving last cached prices",
				slog.String("currency", currency),
				slog.Time("fetched_at", cached.fetchedAt),
				slog.String("error", err.Error()),
			)
			return cached
		}
		logger.Warn("Metal price fetch failed with empty cache, using fallback prices",
			slog.String("currency", currency),
			slog.String("error", err.Error()),
		)
		return cachedPrices{
			goldPerGram:   c.fallbackGold,
			silverPerGram: c.fallbackSilver,
			fetchedAt:     time.Now(),
		}
	}

	c.mu.Lock()
	c.cache[currency] = fresh
	c.mu.Unlock()
	return fresh
}

func (c *MetalPriceClient) fetch(ctx context.Context, currency string) (cachedPrices, error) {
	if c.apiURL == "" {
		return cachedPrices{}, fmt.Errorf("no metal price API configured")
	}

	reqURL := fmt.Sprintf("%s?currency=%s", c.apiURL, url.QueryEscape(currency))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return cachedPrices{}, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cachedPrices{}, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return cachedPrices{}, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}

	var body metalPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return cachedPrices{}, fmt.Errorf("failed to decode price response: %w", err)
	}
	if !body.GoldPerGram.IsPositive() || !body.SilverPerGram.IsPositive() {
		return cachedPrices{}, fmt.Errorf("price API returned non-positive prices (gold=%s, silver=%s)", body.GoldPerGram, body.SilverPerGram)
	}

	return cachedPrices{
		goldPerGram:   body.GoldPerGram,
		silverPerGram: body.SilverPerGram,
		fetchedAt:     time.Now(),
	}, nil
}
