package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/testutil"
)

func TestPortfolioService_CRUD(t *testing.T) {
	t.Run("create and fetch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders())

		created, err := svc.CreatePortfolio(request.CreatePortfolioRequest{
			Name:     "Retirement",
			Currency: "eur",
		})
		if err != nil {
			t.Fatalf("CreatePortfolio failed: %v", err)
		}
		if created.Currency != "EUR" {
			t.Errorf("Expected uppercased currency EUR, got %s", created.Currency)
		}

		fetched, err := svc.GetPortfolio(created.ID)
		if err != nil {
			t.Fatalf("GetPortfolio failed: %v", err)
		}
		if fetched.Name != "Retirement" {
			t.Errorf("Expected Retirement, got %s", fetched.Name)
		}
	})

	t.Run("update merges provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithName("Old").Build(t, db)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders())

		hidden := true
		updated, err := svc.UpdatePortfolio(portfolio.ID, request.UpdatePortfolioRequest{Hidden: &hidden})
		if err != nil {
			t.Fatalf("UpdatePortfolio failed: %v", err)
		}

		if !updated.Hidden {
			t.Error("Expected hidden true")
		}
		if updated.Name != "Old" {
			t.Errorf("Expected untouched name, got %s", updated.Name)
		}
	})

	t.Run("delete cascades to assets and transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().Build(t, db)
		asset := testutil.NewAsset(portfolio.ID).Build(t, db)
		testutil.NewTransaction(asset.ID).Buy(10, 100).Build(t, db)
		providers := testutil.NewTestProviders()
		svc := testutil.NewTestPortfolioService(t, db, providers)
		assetSvc := testutil.NewTestAssetService(t, db, providers)

		if err := svc.DeletePortfolio(portfolio.ID); err != nil {
			t.Fatalf("DeletePortfolio failed: %v", err)
		}

		if _, err := assetSvc.GetAsset(asset.ID); !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Fatalf("Expected cascaded asset delete, got %v", err)
		}
	})

	t.Run("unknown portfolio yields not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders())

		if _, err := svc.GetPortfolio(testutil.MakeID()); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Fatalf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

func TestPortfolioService_GetPortfolioStats(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates fully valued assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithCurrency("USD").Build(t, db)
		apple := testutil.NewAsset(portfolio.ID).WithSymbol("AAPL").WithCurrency("USD").Build(t, db)
		micro := testutil.NewAsset(portfolio.ID).WithSymbol("MSFT").WithCurrency("USD").Build(t, db)
		testutil.NewTransaction(apple.ID).Buy(6, 100).Build(t, db)
		testutil.NewTransaction(micro.ID).Buy(2, 200).Build(t, db)

		providers := testutil.NewTestProviders()
		providers.Equity.WithQuote("AAPL", 130, "USD").WithQuote("MSFT", 210, "USD")
		svc := testutil.NewTestPortfolioService(t, db, providers)

		stats, err := svc.GetPortfolioStats(ctx, portfolio.ID, false)
		if err != nil {
			t.Fatalf("GetPortfolioStats failed: %v", err)
		}

		// 6*130 + 2*210 = 1200, cost 600 + 400 = 1000
		if stats.TotalValue == nil || *stats.TotalValue != 1200 {
			t.Errorf("Expected total value 1200, got %v", stats.TotalValue)
		}
		if stats.TotalCost != 1000 {
			t.Errorf("Expected total cost 1000, got %v", stats.TotalCost)
		}
		if stats.AssetCount != 2 || stats.PendingCount != 0 {
			t.Errorf("Expected counts 2/0, got %d/%d", stats.AssetCount, stats.PendingCount)
		}
	})

	t.Run("one failing asset nulls the total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithCurrency("USD").Build(t, db)
		apple := testutil.NewAsset(portfolio.ID).WithSymbol("AAPL").WithCurrency("USD").Build(t, db)
		broken := testutil.NewAsset(portfolio.ID).WithSymbol("NOPE").WithCurrency("USD").Build(t, db)
		testutil.NewTransaction(apple.ID).Buy(6, 100).Build(t, db)
		testutil.NewTransaction(broken.ID).Buy(1, 50).Build(t, db)

		providers := testutil.NewTestProviders()
		providers.Equity.WithQuote("AAPL", 130, "USD") // NOPE has no quote
		svc := testutil.NewTestPortfolioService(t, db, providers)

		stats, err := svc.GetPortfolioStats(ctx, portfolio.ID, false)
		if err != nil {
			t.Fatalf("GetPortfolioStats failed: %v", err)
		}

		if stats.TotalValue != nil {
			t.Errorf("Expected nil total with a pending asset, got %v", *stats.TotalValue)
		}
		if stats.PendingCount != 1 {
			t.Errorf("Expected 1 pending, got %d", stats.PendingCount)
		}
		// Known costs still sum: 600 + 50.
		if stats.TotalCost != 650 {
			t.Errorf("Expected cost 650, got %v", stats.TotalCost)
		}
	})
}

func TestPortfolioService_GetOverviewStats(t *testing.T) {
	ctx := context.Background()

	db := testutil.SetupTestDB(t)
	eur := testutil.NewPortfolio().WithName("Euro").WithCurrency("EUR").Build(t, db)
	usd := testutil.NewPortfolio().WithName("Dollar").WithCurrency("USD").Build(t, db)
	cashEUR := testutil.NewAsset(eur.ID).WithType(model.AssetTypeCash).WithCurrency("EUR").Build(t, db)
	cashUSD := testutil.NewAsset(usd.ID).WithType(model.AssetTypeCash).WithCurrency("USD").Build(t, db)
	testutil.NewTransaction(cashEUR.ID).Buy(1000, 1).Build(t, db)
	testutil.NewTransaction(cashUSD.ID).Buy(500, 1).Build(t, db)

	providers := testutil.NewTestProviders()
	providers.Rates.WithRate("USD", "EUR", 0.9)
	svc := testutil.NewTestPortfolioService(t, db, providers)

	stats, err := svc.GetOverviewStats(ctx, "EUR", false)
	if err != nil {
		t.Fatalf("GetOverviewStats failed: %v", err)
	}

	if stats.ID != model.OverviewID || stats.Name != model.OverviewName {
		t.Errorf("Expected overview identity, got %s/%s", stats.ID, stats.Name)
	}
	// 1000 EUR + 500 USD * 0.9 = 1450 EUR
	if stats.TotalValue == nil || *stats.TotalValue != 1450 {
		t.Errorf("Expected total 1450, got %v", stats.TotalValue)
	}
	if stats.Currency != "EUR" {
		t.Errorf("Expected currency EUR, got %s", stats.Currency)
	}
}

func TestPortfolioService_Allocation(t *testing.T) {
	ctx := context.Background()

	t.Run("by type excludes pending assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithCurrency("USD").Build(t, db)
		apple := testutil.NewAsset(portfolio.ID).WithSymbol("AAPL").WithType(model.AssetTypeStock).WithCurrency("USD").Build(t, db)
		pending := testutil.NewAsset(portfolio.ID).WithSymbol("NOPE").WithType(model.AssetTypeCrypto).WithCurrency("USD").Build(t, db)
		testutil.NewTransaction(apple.ID).Buy(6, 100).Build(t, db)
		testutil.NewTransaction(pending.ID).Buy(1, 50).Build(t, db)

		providers := testutil.NewTestProviders()
		providers.Equity.WithQuote("AAPL", 130, "USD")
		svc := testutil.NewTestPortfolioService(t, db, providers)

		allocation, err := svc.GetAllocationByType(ctx, portfolio.ID, false)
		if err != nil {
			t.Fatalf("GetAllocationByType failed: %v", err)
		}

		if len(allocation.Slices) != 1 {
			t.Fatalf("Expected 1 slice, got %d", len(allocation.Slices))
		}
		if allocation.Slices[0].Key != "stock" || allocation.Slices[0].Percent != 100 {
			t.Errorf("Expected stock at 100 percent, got %+v", allocation.Slices[0])
		}
	})

	t.Run("by category puts uncategorized last", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		portfolio := testutil.NewPortfolio().WithCurrency("EUR").Build(t, db)
		growth := testutil.NewCategory().WithName("Growth").Build(t, db)
		categorized := testutil.NewAsset(portfolio.ID).WithType(model.AssetTypeCash).WithCategory(growth.ID).Build(t, db)
		uncategorized := testutil.NewAsset(portfolio.ID).WithType(model.AssetTypeCash).Build(t, db)
		testutil.NewTransaction(categorized.ID).Buy(600, 1).Build(t, db)
		testutil.NewTransaction(uncategorized.ID).Buy(400, 1).Build(t, db)

		svc := testutil.NewTestPortfolioService(t, db, testutil.NewTestProviders())

		allocation, err := svc.GetAllocationByCategory(ctx, portfolio.ID, false)
		if err != nil {
			t.Fatalf("GetAllocationByCategory failed: %v", err)
		}

		if !allocation.HasCategories {
			t.Error("Expected HasCategories true")
		}
		if len(allocation.Slices) != 2 {
			t.Fatalf("Expected 2 slices, got %d", len(allocation.Slices))
		}
		if allocation.Slices[0].Key != "Growth" || allocation.Slices[1].Key != "Uncategorized" {
			t.Errorf("Expected Growth then Uncategorized, got %s then %s",
				allocation.Slices[0].Key, allocation.Slices[1].Key)
		}
		if allocation.Slices[0].Percent != 60 || allocation.Slices[1].Percent != 40 {
			t.Errorf("Expected 60/40 split, got %v/%v",
				allocation.Slices[0].Percent, allocation.Slices[1].Percent)
		}
	})
}
