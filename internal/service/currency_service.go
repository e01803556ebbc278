package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
)

// CurrencyService is the currency conversion layer. Rates are cached with
// their own staleness window, independent of the price cache; concurrent
// requests for the same pair share one in-flight provider call.
//
// An unavailable rate is reported as nil ("conversion pending"), never
// defaulted to 1 and never surfaced as an error.
type CurrencyService struct {
	provider marketdata.RateProvider
	cache    marketdata.Cache
	ttl      time.Duration
	group    singleflight.Group
	logger   zerolog.Logger
}

// NewCurrencyService creates a new CurrencyService with the provided rate
// provider, cache, and staleness window.
func NewCurrencyService(
	provider marketdata.RateProvider,
	cache marketdata.Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) *CurrencyService {
	return &CurrencyService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// GetRate returns the exchange rate from one ISO currency code to another,
// or nil while unavailable. Identical codes short-circuit to 1 with no cache
// or provider involvement. force bypasses the cached value.
func (s *CurrencyService) GetRate(ctx context.Context, from, to string, force bool) *float64 {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		one := 1.0
		return &one
	}

	key := fmt.Sprintf("rate:%s:%s", from, to)

	if !force {
		if entry, ok := s.cache.Get(key); ok {
			rate := entry.Value
			return &rate
		}
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		rate, err := s.provider.GetRate(ctx, from, to)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		s.cache.Set(key, marketdata.CacheEntry{
			Value:     rate,
			Currency:  to,
			FetchedAt: now,
			ExpiresAt: now.Add(s.ttl),
		})

		return rate, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("from", from).Str("to", to).Msg("exchange rate unavailable")
		return nil
	}

	rate := result.(float64)
	return &rate
}
