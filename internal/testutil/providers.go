package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
)

// ErrProviderDown is the error fake providers return when configured to fail.
var ErrProviderDown = errors.New("provider unavailable")

// FakeEquityProvider is an in-memory EquityPriceProvider for tests. It
// serves quotes from a fixed map and counts calls so tests can assert that
// caching, simple-type short-circuits, and throttling behave as expected.
type FakeEquityProvider struct {
	mu     sync.Mutex
	quotes map[string]marketdata.Quote
	fail   bool
	calls  int
}

// NewFakeEquityProvider creates an empty FakeEquityProvider.
func NewFakeEquityProvider() *FakeEquityProvider {
	return &FakeEquityProvider{quotes: make(map[string]marketdata.Quote)}
}

// WithQuote registers a quote for a symbol.
func (f *FakeEquityProvider) WithQuote(symbol string, price float64, currency string) *FakeEquityProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes[symbol] = marketdata.Quote{Price: price, Currency: currency}
	return f
}

// WithError makes every subsequent call fail.
func (f *FakeEquityProvider) WithError() *FakeEquityProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = true
	return f
}

// Calls returns how many times GetPrice was invoked.
func (f *FakeEquityProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// GetPrice implements marketdata.EquityPriceProvider.
func (f *FakeEquityProvider) GetPrice(_ context.Context, symbol string) (*marketdata.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.fail {
		return nil, ErrProviderDown
	}

	quote, ok := f.quotes[symbol]
	if !ok {
		return nil, ErrProviderDown
	}
	return &quote, nil
}

// FakeCryptoProvider is an in-memory CryptoPriceProvider for tests, keyed
// by symbol and quote currency.
type FakeCryptoProvider struct {
	mu     sync.Mutex
	quotes map[string]map[string]float64 // symbol -> currency -> price
	fail   bool
	calls  int
}

// NewFakeCryptoProvider creates an empty FakeCryptoProvider.
func NewFakeCryptoProvider() *FakeCryptoProvider {
	return &FakeCryptoProvider{quotes: make(map[string]map[string]float64)}
}

// WithQuote registers a price for a symbol/quote-currency pair.
func (f *FakeCryptoProvider) WithQuote(symbol, currency string, price float64) *FakeCryptoProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.quotes[symbol] == nil {
		f.quotes[symbol] = make(map[string]float64)
	}
	f.quotes[symbol][currency] = price
	return f
}

// WithError makes every subsequent call fail.
func (f *FakeCryptoProvider) WithError() *FakeCryptoProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = true
	return f
}

// Calls returns how many times GetPrice was invoked.
func (f *FakeCryptoProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// GetPrice implements marketdata.CryptoPriceProvider. The quote currencies
// are tried in order, matching the real provider's contract.
func (f *FakeCryptoProvider) GetPrice(_ context.Context, symbol string, quoteCurrencies []string) (*marketdata.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.fail {
		return nil, ErrProviderDown
	}

	pairs, ok := f.quotes[symbol]
	if !ok {
		return nil, ErrProviderDown
	}

	for _, currency := range quoteCurrencies {
		if price, ok := pairs[currency]; ok {
			return &marketdata.Quote{Price: price, Currency: currency}, nil
		}
	}
	return nil, ErrProviderDown
}

// FakeRateProvider is an in-memory RateProvider for tests, keyed by
// "FROM:TO" currency pair.
type FakeRateProvider struct {
	mu    sync.Mutex
	rates map[string]float64
	fail  bool
	calls int
}

// NewFakeRateProvider creates an empty FakeRateProvider.
func NewFakeRateProvider() *FakeRateProvider {
	return &FakeRateProvider{rates: make(map[string]float64)}
}

// WithRate registers an exchange rate for a currency pair.
func (f *FakeRateProvider) WithRate(from, to string, rate float64) *FakeRateProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rates[from+":"+to] = rate
	return f
}

// WithError makes every subsequent call fail.
func (f *FakeRateProvider) WithError() *FakeRateProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = true
	return f
}

// Calls returns how many times GetRate was invoked.
func (f *FakeRateProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// GetRate implements marketdata.RateProvider.
func (f *FakeRateProvider) GetRate(_ context.Context, from, to string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.fail {
		return 0, ErrProviderDown
	}

	rate, ok := f.rates[from+":"+to]
	if !ok {
		return 0, ErrProviderDown
	}
	return rate, nil
}

var (
	_ marketdata.EquityPriceProvider = (*FakeEquityProvider)(nil)
	_ marketdata.CryptoPriceProvider = (*FakeCryptoProvider)(nil)
	_ marketdata.RateProvider        = (*FakeRateProvider)(nil)
)
