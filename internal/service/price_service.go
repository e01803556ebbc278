package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// cryptoFallbackCurrencies are the liquid quote currencies tried when a
// crypto pair in the asset's preferred currency is not available.
var cryptoFallbackCurrencies = []string{"EUR", "USD"}

// PriceService is the price access layer. It routes price lookups to the
// provider matching the asset type, applies the per-type staleness policy
// through the shared cache, and de-duplicates concurrent requests for the
// same key so one in-flight provider call serves all waiters.
//
// Provider failures are absorbed here: callers receive nil ("price
// pending"), never an error that would block the rest of a portfolio
// computation.
type PriceService struct {
	equity marketdata.EquityPriceProvider
	crypto marketdata.CryptoPriceProvider
	cache  marketdata.Cache
	group  singleflight.Group
	logger zerolog.Logger
}

// NewPriceService creates a new PriceService with the provided providers and cache.
func NewPriceService(
	equity marketdata.EquityPriceProvider,
	crypto marketdata.CryptoPriceProvider,
	cache marketdata.Cache,
	logger zerolog.Logger,
) *PriceService {
	return &PriceService{
		equity: equity,
		crypto: crypto,
		cache:  cache,
		logger: logger,
	}
}

// GetPrice returns the current unit price for a symbol/asset-type pair, or
// nil while the price is unavailable (not yet fetched, or the provider
// failed; the two are indistinguishable to callers).
//
// Simple asset types always resolve synchronously to price 1 in the
// preferred currency, with no provider or cache involvement. Market types
// reuse a cached quote younger than the type's refresh interval; force
// bypasses that reuse and fetches anew.
func (s *PriceService) GetPrice(
	ctx context.Context,
	assetType model.AssetType,
	symbol string,
	preferredCurrency string,
	force bool,
) *marketdata.Quote {

	if assetType.IsSimple() {
		return &marketdata.Quote{Price: 1, Currency: preferredCurrency}
	}

	key := priceCacheKey(assetType, symbol, preferredCurrency)

	if !force {
		if entry, ok := s.cache.Get(key); ok {
			return &marketdata.Quote{Price: entry.Value, Currency: entry.Currency}
		}
	}

	// One in-flight fetch per key serves every concurrent caller. This
	// matters most for the rate-limited general provider, where duplicate
	// fan-out would waste throttled request slots.
	result, err, _ := s.group.Do(key, func() (any, error) {
		quote, err := s.fetch(ctx, assetType, symbol, preferredCurrency)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		s.cache.Set(key, marketdata.CacheEntry{
			Value:     quote.Price,
			Currency:  quote.Currency,
			FetchedAt: now,
			ExpiresAt: now.Add(assetType.RefreshInterval()),
		})

		return quote, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("price unavailable")
		return nil
	}

	return result.(*marketdata.Quote)
}

// fetch performs one provider call for a market-type asset.
func (s *PriceService) fetch(
	ctx context.Context,
	assetType model.AssetType,
	symbol string,
	preferredCurrency string,
) (*marketdata.Quote, error) {

	if assetType.IsCrypto() {
		return s.crypto.GetPrice(ctx, symbol, cryptoQuoteCurrencies(preferredCurrency))
	}
	return s.equity.GetPrice(ctx, symbol)
}

// ClearCache drops every cached price and rate. Exposed for forced refresh.
func (s *PriceService) ClearCache() {
	s.cache.Clear()
}

// priceCacheKey builds the cache key for a symbol. Crypto keys include the
// preferred currency because the quoted currency depends on it.
func priceCacheKey(assetType model.AssetType, symbol, preferredCurrency string) string {
	if assetType.IsCrypto() {
		return fmt.Sprintf("price:crypto:%s:%s", strings.ToUpper(symbol), strings.ToUpper(preferredCurrency))
	}
	return fmt.Sprintf("price:equity:%s", strings.ToUpper(symbol))
}

// cryptoQuoteCurrencies returns the ordered quote-currency preference list:
// the asset's own currency first, then the liquid fallbacks.
func cryptoQuoteCurrencies(preferred string) []string {
	currencies := []string{strings.ToUpper(preferred)}
	for _, fallback := range cryptoFallbackCurrencies {
		if fallback != currencies[0] {
			currencies = append(currencies, fallback)
		}
	}
	return currencies
}
