package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edineros/portfolio-tracker-backend/internal/jobs"
	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
	"github.com/edineros/portfolio-tracker-backend/internal/testutil"
)

func TestRefresher_Refresh(t *testing.T) {
	t.Run("fetches prices for market assets and rates for foreign ones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithCurrency("EUR").Build(t, db)
		testutil.NewAsset(portfolio.ID).WithSymbol("VWCE").WithCurrency("EUR").Build(t, db)
		testutil.NewAsset(portfolio.ID).WithSymbol("AAPL").WithCurrency("USD").Build(t, db)
		// Simple types hold no market quote and are skipped entirely.
		testutil.NewAsset(portfolio.ID).WithSymbol("HOME").WithType(model.AssetTypeRealEstate).Build(t, db)

		providers := testutil.NewTestProviders()
		providers.Equity.WithQuote("VWCE", 110, "EUR")
		providers.Equity.WithQuote("AAPL", 230, "USD")
		providers.Rates.WithRate("USD", "EUR", 0.9)

		refresher := jobs.NewRefresher(
			repository.NewAssetRepository(db),
			repository.NewPortfolioRepository(db),
			testutil.NewTestPriceService(t, providers),
			testutil.NewTestCurrencyService(t, providers),
			nil,
			zerolog.Nop(),
		)

		if err := refresher.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		if got := providers.Equity.Calls(); got != 2 {
			t.Errorf("Expected 2 equity lookups, got %d", got)
		}
		if got := providers.Rates.Calls(); got != 1 {
			t.Errorf("Expected 1 rate lookup, got %d", got)
		}
	})

	t.Run("provider failures do not fail the pass", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewAsset(portfolio.ID).WithSymbol("VWCE").Build(t, db)

		providers := testutil.NewTestProviders()
		providers.Equity.WithError()

		refresher := jobs.NewRefresher(
			repository.NewAssetRepository(db),
			repository.NewPortfolioRepository(db),
			testutil.NewTestPriceService(t, providers),
			testutil.NewTestCurrencyService(t, providers),
			nil,
			zerolog.Nop(),
		)

		if err := refresher.Refresh(context.Background()); err != nil {
			t.Fatalf("Expected the pass to absorb lookup failures, got %v", err)
		}
	})

	t.Run("prunes expired persistent cache rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		cache := repository.NewMarketCacheRepository(db, zerolog.Nop())
		seedExpiredCacheEntry(t, cache)

		providers := testutil.NewTestProviders()
		refresher := jobs.NewRefresher(
			repository.NewAssetRepository(db),
			repository.NewPortfolioRepository(db),
			testutil.NewTestPriceService(t, providers),
			testutil.NewTestCurrencyService(t, providers),
			cache,
			zerolog.Nop(),
		)

		if err := refresher.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM market_cache").Scan(&count); err != nil {
			t.Fatalf("Failed to count cache rows: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected expired cache rows to be pruned, found %d", count)
		}
	})
}

func seedExpiredCacheEntry(t *testing.T, cache *repository.MarketCacheRepository) {
	t.Helper()
	cache.Set("price:equity:OLD", marketdata.CacheEntry{
		Value:     42,
		Currency:  "EUR",
		FetchedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	})
}
