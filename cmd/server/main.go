package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/edineros/portfolio-tracker-backend/internal/api"
	"github.com/edineros/portfolio-tracker-backend/internal/coingecko"
	"github.com/edineros/portfolio-tracker-backend/internal/config"
	"github.com/edineros/portfolio-tracker-backend/internal/database"
	"github.com/edineros/portfolio-tracker-backend/internal/jobs"
	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
	"github.com/edineros/portfolio-tracker-backend/internal/service"
	"github.com/edineros/portfolio-tracker-backend/internal/yahoo"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	logger.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	marketCache := repository.NewMarketCacheRepository(db, logger)

	// Market data providers. Equity lookups funnel through a strict FIFO
	// queue so provider requests stay spaced out.
	yahooClient := yahoo.NewFinanceClient()
	equityProvider := marketdata.NewThrottledEquityProvider(yahooClient, cfg.Market.RequestSpacing)
	defer equityProvider.Close()
	cryptoProvider := coingecko.NewClient()

	// Create services
	systemService := service.NewSystemService(db)
	priceService := service.NewPriceService(equityProvider, cryptoProvider, marketCache, logger)
	currencyService := service.NewCurrencyService(yahooClient, marketCache, cfg.Market.RateTTL, logger)
	transactionService := service.NewTransactionService(transactionRepo, assetRepo)
	assetService := service.NewAssetService(
		assetRepo,
		portfolioRepo,
		categoryRepo,
		transactionRepo,
		priceService,
		currencyService,
	)
	portfolioService := service.NewPortfolioService(
		portfolioRepo,
		assetRepo,
		categoryRepo,
		assetService,
	)
	categoryService := service.NewCategoryService(categoryRepo)

	// Background price refresh
	refresher := jobs.NewRefresher(
		assetRepo,
		portfolioRepo,
		priceService,
		currencyService,
		marketCache,
		logger,
	)
	if err := refresher.Start(cfg.Market.RefreshSchedule); err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule market refresh")
	}
	defer refresher.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Portfolio:   portfolioService,
		Asset:       assetService,
		Transaction: transactionService,
		Category:    categoryService,
		Price:       priceService,
		Searcher:    yahooClient,
	}, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
