// Package marketdata defines the capability contracts the valuation engine
// consumes for market prices and exchange rates, plus the shared cache and
// request-pacing plumbing used by their implementations.
package marketdata

import "context"

// Quote is a unit price for one symbol in the currency it was quoted in.
// The quote currency is whatever the provider trades the symbol in; it is
// not necessarily the asset's configured currency.
type Quote struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// SymbolMatch is one candidate returned by a symbol search.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Exchange string `json:"exchange,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// EquityPriceProvider yields current prices for exchange-traded symbols
// (stocks, ETFs, bonds, commodities). The returned quote's currency is the
// symbol's native trading currency.
//
// A nil quote with a nil error never occurs: failures are reported as
// errors, which callers collapse into "price unavailable".
type EquityPriceProvider interface {
	GetPrice(ctx context.Context, symbol string) (*Quote, error)
}

// CryptoPriceProvider yields current prices for crypto symbols. The provider
// tries the quote currencies in order and returns the first pair it can
// price, so callers can prefer the asset's own currency and fall back to
// liquid quotes.
type CryptoPriceProvider interface {
	GetPrice(ctx context.Context, symbol string, quoteCurrencies []string) (*Quote, error)
}

// RateProvider yields the exchange rate between two ISO currency codes:
// amount_in_to = amount_in_from * rate. Implementations are not called for
// identical codes; callers short-circuit that to 1.
type RateProvider interface {
	GetRate(ctx context.Context, from, to string) (float64, error)
}

// SymbolSearcher provides best-effort symbol lookup by name or ticker.
type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]SymbolMatch, error)
}
