package service_test

import (
	"context"
	"testing"

	"github.com/edineros/portfolio-tracker-backend/internal/testutil"
)

func TestCurrencyService_GetRate(t *testing.T) {
	ctx := context.Background()

	t.Run("identical currencies short-circuit to 1", func(t *testing.T) {
		providers := testutil.NewTestProviders()
		svc := testutil.NewTestCurrencyService(t, providers)

		rate := svc.GetRate(ctx, "EUR", "EUR", false)

		if rate == nil || *rate != 1 {
			t.Fatalf("Expected rate 1, got %v", rate)
		}
		if providers.Rates.Calls() != 0 {
			t.Error("Expected no provider call for identical currencies")
		}
	})

	t.Run("fetches and caches the pair rate", func(t *testing.T) {
		providers := testutil.NewTestProviders()
		providers.Rates.WithRate("USD", "EUR", 0.9)
		svc := testutil.NewTestCurrencyService(t, providers)

		first := svc.GetRate(ctx, "USD", "EUR", false)
		second := svc.GetRate(ctx, "USD", "EUR", false)

		if first == nil || *first != 0.9 {
			t.Fatalf("Expected 0.9, got %v", first)
		}
		if second == nil || *second != 0.9 {
			t.Fatalf("Expected cached 0.9, got %v", second)
		}
		if calls := providers.Rates.Calls(); calls != 1 {
			t.Errorf("Expected 1 provider call, got %d", calls)
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		providers := testutil.NewTestProviders()
		providers.Rates.WithRate("USD", "EUR", 0.9)
		svc := testutil.NewTestCurrencyService(t, providers)

		rate := svc.GetRate(ctx, " usd ", "eur", false)

		if rate == nil || *rate != 0.9 {
			t.Fatalf("Expected 0.9, got %v", rate)
		}
	})

	t.Run("provider failure yields nil", func(t *testing.T) {
		providers := testutil.NewTestProviders()
		providers.Rates.WithError()
		svc := testutil.NewTestCurrencyService(t, providers)

		if rate := svc.GetRate(ctx, "USD", "EUR", false); rate != nil {
			t.Errorf("Expected nil on provider failure, got %v", *rate)
		}
	})

	t.Run("force bypasses the cache", func(t *testing.T) {
		providers := testutil.NewTestProviders()
		providers.Rates.WithRate("USD", "EUR", 0.9)
		svc := testutil.NewTestCurrencyService(t, providers)

		svc.GetRate(ctx, "USD", "EUR", false)
		svc.GetRate(ctx, "USD", "EUR", true)

		if calls := providers.Rates.Calls(); calls != 2 {
			t.Errorf("Expected 2 provider calls, got %d", calls)
		}
	})

	t.Run("inverse pairs are cached independently", func(t *testing.T) {
		providers := testutil.NewTestProviders()
		providers.Rates.WithRate("USD", "EUR", 0.9)
		providers.Rates.WithRate("EUR", "USD", 1.11)
		svc := testutil.NewTestCurrencyService(t, providers)

		usdEur := svc.GetRate(ctx, "USD", "EUR", false)
		eurUsd := svc.GetRate(ctx, "EUR", "USD", false)

		if usdEur == nil || eurUsd == nil || *usdEur == *eurUsd {
			t.Fatalf("Expected distinct rates, got %v and %v", usdEur, eurUsd)
		}
		if calls := providers.Rates.Calls(); calls != 2 {
			t.Errorf("Expected 2 provider calls, got %d", calls)
		}
	})
}
