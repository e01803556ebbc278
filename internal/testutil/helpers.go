package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
	"github.com/edineros/portfolio-tracker-backend/internal/service"
)

// Providers bundles the fake market data providers a test service stack is
// wired with, so tests can configure quotes and assert call counts.
type Providers struct {
	Equity *FakeEquityProvider
	Crypto *FakeCryptoProvider
	Rates  *FakeRateProvider
}

// NewTestProviders creates an empty fake provider set.
func NewTestProviders() *Providers {
	return &Providers{
		Equity: NewFakeEquityProvider(),
		Crypto: NewFakeCryptoProvider(),
		Rates:  NewFakeRateProvider(),
	}
}

// NewTestPriceService wires a PriceService over the fake providers with a
// fresh in-memory cache.
func NewTestPriceService(t *testing.T, p *Providers) *service.PriceService {
	t.Helper()
	return service.NewPriceService(p.Equity, p.Crypto, marketdata.NewMemoryCache(), zerolog.Nop())
}

// NewTestCurrencyService wires a CurrencyService over the fake rate
// provider with a fresh in-memory cache and a one-hour staleness window.
func NewTestCurrencyService(t *testing.T, p *Providers) *service.CurrencyService {
	t.Helper()
	return service.NewCurrencyService(p.Rates, marketdata.NewMemoryCache(), time.Hour, zerolog.Nop())
}

// NewTestAssetService wires an AssetService over the given database and
// fake providers.
func NewTestAssetService(t *testing.T, db *sql.DB, p *Providers) *service.AssetService {
	t.Helper()

	return service.NewAssetService(
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewTransactionRepository(db),
		NewTestPriceService(t, p),
		NewTestCurrencyService(t, p),
	)
}

// NewTestPortfolioService wires a PortfolioService over the given database
// and fake providers.
func NewTestPortfolioService(t *testing.T, db *sql.DB, p *Providers) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db),
		repository.NewAssetRepository(db),
		repository.NewCategoryRepository(db),
		NewTestAssetService(t, db, p),
	)
}

// NewTestTransactionService wires a TransactionService over the given
// database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAssetRepository(db),
	)
}

// NewTestCategoryService wires a CategoryService over the given database.
func NewTestCategoryService(t *testing.T, db *sql.DB) *service.CategoryService {
	t.Helper()
	return service.NewCategoryService(repository.NewCategoryRepository(db))
}

// NewTestSystemService wires a SystemService over the given database.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}
