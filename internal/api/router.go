package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/edineros/portfolio-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/edineros/portfolio-tracker-backend/internal/api/middleware"
	"github.com/edineros/portfolio-tracker-backend/internal/config"
	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Portfolio   *service.PortfolioService
	Asset       *service.AssetService
	Transaction *service.TransactionService
	Category    *service.CategoryService
	Price       *service.PriceService
	Searcher    marketdata.SymbolSearcher
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/stats", portfolioHandler.PortfolioStats)
				r.Get("/assets", portfolioHandler.PortfolioAssets)
				r.Get("/allocation/type", portfolioHandler.AllocationByType)
				r.Get("/allocation/category", portfolioHandler.AllocationByCategory)
			})
		})

		r.Route("/overview", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/stats", portfolioHandler.OverviewStats)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Asset)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Get("/stats", assetHandler.AssetStats)
				r.Get("/lots", assetHandler.AssetLots)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/asset/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionsPerAsset)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/category", func(r chi.Router) {
			categoryHandler := handlers.NewCategoryHandler(svc.Category)
			r.Get("/", categoryHandler.Categories)
			r.Post("/", categoryHandler.CreateCategory)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", categoryHandler.GetCategory)
				r.Put("/", categoryHandler.UpdateCategory)
				r.Delete("/", categoryHandler.DeleteCategory)
			})
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svc.Searcher, svc.Price)
			r.Get("/search", marketHandler.Search)
			r.Post("/cache/clear", marketHandler.ClearCache)
		})
	})

	return r
}
