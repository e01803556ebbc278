// Package jobs contains the background refresh scheduler. It keeps cached
// market prices and exchange rates warm so stats requests rarely wait on a
// provider round trip.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edineros/portfolio-tracker-backend/internal/repository"
	"github.com/edineros/portfolio-tracker-backend/internal/service"
)

// refreshConcurrency bounds the number of simultaneous refresh lookups.
// Provider calls behind the throttled queue serialize anyway; this keeps
// the fan-out from flooding the queue for large portfolios.
const refreshConcurrency = 4

// refreshTimeout is the deadline for one full refresh pass.
const refreshTimeout = 2 * time.Minute

// Refresher periodically re-fetches prices for every market-type asset and
// exchange rates for every portfolio currency pair in use.
type Refresher struct {
	assetRepo       *repository.AssetRepository
	portfolioRepo   *repository.PortfolioRepository
	priceService    *service.PriceService
	currencyService *service.CurrencyService
	cache           *repository.MarketCacheRepository
	logger          zerolog.Logger

	cron *cron.Cron
}

// NewRefresher creates a Refresher. The cache parameter may be nil when
// the persistent cache is not in use; pruning is then skipped.
func NewRefresher(
	assetRepo *repository.AssetRepository,
	portfolioRepo *repository.PortfolioRepository,
	priceService *service.PriceService,
	currencyService *service.CurrencyService,
	cache *repository.MarketCacheRepository,
	logger zerolog.Logger,
) *Refresher {
	return &Refresher{
		assetRepo:       assetRepo,
		portfolioRepo:   portfolioRepo,
		priceService:    priceService,
		currencyService: currencyService,
		cache:           cache,
		logger:          logger,
	}
}

// Start schedules the refresh on the given cron spec and begins running.
func (r *Refresher) Start(schedule string) error {
	r.cron = cron.New()

	if _, err := r.cron.AddFunc(schedule, r.runOnce); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info().Str("schedule", schedule).Msg("market refresh scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running pass to finish.
func (r *Refresher) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

func (r *Refresher) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.Refresh(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("market refresh pass failed")
	}
}

// Refresh performs one refresh pass: every market asset's price and every
// asset-to-portfolio currency pair, with bounded concurrency. Individual
// lookup failures are absorbed by the services and only logged; the pass
// itself fails only when the database is unreachable.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()

	assets, err := r.assetRepo.GetAssets("")
	if err != nil {
		return err
	}

	portfolioCurrency, err := r.portfolioCurrencies()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	var prices, rates int
	for _, asset := range assets {
		if asset.Type.IsSimple() {
			continue
		}
		prices++

		g.Go(func() error {
			r.priceService.GetPrice(gctx, asset.Type, asset.Symbol, asset.Currency, false)
			return nil
		})

		// Warm the conversion into the owning portfolio's currency too.
		if display, ok := portfolioCurrency[asset.PortfolioID]; ok && display != asset.Currency {
			rates++
			g.Go(func() error {
				r.currencyService.GetRate(gctx, asset.Currency, display, false)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.PruneExpired(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to prune expired cache entries")
		}
	}

	r.logger.Info().
		Int("prices", prices).
		Int("rates", rates).
		Dur("duration", time.Since(start)).
		Msg("market refresh pass complete")
	return nil
}

func (r *Refresher) portfolioCurrencies() (map[string]string, error) {
	portfolios, err := r.portfolioRepo.GetPortfolios()
	if err != nil {
		return nil, err
	}

	currencies := make(map[string]string, len(portfolios))
	for _, p := range portfolios {
		currencies[p.ID] = p.Currency
	}
	return currencies, nil
}
