package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic: CRUD plus the
// aggregation of per-asset statistics into portfolio- and cross-portfolio
// totals and allocation breakdowns.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	assetRepo     *repository.AssetRepository
	categoryRepo  *repository.CategoryRepository
	assetService  *AssetService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	assetRepo *repository.AssetRepository,
	categoryRepo *repository.CategoryRepository,
	assetService *AssetService,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		assetRepo:     assetRepo,
		categoryRepo:  categoryRepo,
		assetService:  assetService,
	}
}

// GetAllPortfolios retrieves all portfolios from the database.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios()
}

// GetPortfolio retrieves one portfolio by ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolio(portfolioID)
}

// CreatePortfolio creates a new portfolio.
func (s *PortfolioService) CreatePortfolio(req request.CreatePortfolioRequest) (model.Portfolio, error) {
	now := time.Now().UTC()
	portfolio := model.Portfolio{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Currency:  strings.ToUpper(req.Currency),
		Hidden:    req.Hidden,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.portfolioRepo.CreatePortfolio(portfolio); err != nil {
		return model.Portfolio{}, err
	}

	return portfolio, nil
}

// UpdatePortfolio applies the non-nil fields of the request to an existing
// portfolio.
func (s *PortfolioService) UpdatePortfolio(portfolioID string, req request.UpdatePortfolioRequest) (model.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return model.Portfolio{}, err
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Currency != nil {
		portfolio.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Hidden != nil {
		portfolio.Hidden = *req.Hidden
	}
	portfolio.UpdatedAt = time.Now().UTC()

	if err := s.portfolioRepo.UpdatePortfolio(portfolio); err != nil {
		return model.Portfolio{}, err
	}

	return portfolio, nil
}

// DeletePortfolio removes a portfolio and, via cascading foreign keys, its
// assets and their transactions.
func (s *PortfolioService) DeletePortfolio(portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(portfolioID)
}

// GetPortfolioStats computes aggregate statistics for one portfolio in its
// own base currency. Every call recomputes from the live transaction set
// and the current cache state; nothing is accumulated between calls.
func (s *PortfolioService) GetPortfolioStats(ctx context.Context, portfolioID string, force bool) (model.PortfolioStats, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return model.PortfolioStats{}, err
	}

	assetStats, err := s.collectAssetStats(ctx, portfolioID, portfolio.Currency, force)
	if err != nil {
		return model.PortfolioStats{}, err
	}

	stats := ComputePortfolioStats(portfolio.ID, portfolio.Name, portfolio.Currency, assetStats)
	roundPortfolioStats(&stats)
	return stats, nil
}

// GetOverviewStats computes aggregate statistics across the union of all
// portfolios' assets under the synthetic "All Portfolios" identity, valued
// in displayCurrency. An empty displayCurrency defaults to the first
// portfolio's base currency.
func (s *PortfolioService) GetOverviewStats(ctx context.Context, displayCurrency string, force bool) (model.PortfolioStats, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return model.PortfolioStats{}, err
	}

	displayCurrency = strings.ToUpper(displayCurrency)
	if displayCurrency == "" && len(portfolios) > 0 {
		displayCurrency = portfolios[0].Currency
	}

	assetStats, err := s.collectAssetStats(ctx, "", displayCurrency, force)
	if err != nil {
		return model.PortfolioStats{}, err
	}

	stats := ComputePortfolioStats(model.OverviewID, model.OverviewName, displayCurrency, assetStats)
	roundPortfolioStats(&stats)
	return stats, nil
}

// GetPortfolioAssetStats computes per-asset statistics for every asset in a
// portfolio, in the portfolio's base currency.
func (s *PortfolioService) GetPortfolioAssetStats(ctx context.Context, portfolioID string, force bool) ([]model.AssetStats, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return nil, err
	}

	return s.collectAssetStats(ctx, portfolioID, portfolio.Currency, force)
}

// GetAllocationByType computes the portfolio's value breakdown by asset
// type. Assets whose value is still pending are excluded from the
// breakdown; they cannot be allocated a percentage.
func (s *PortfolioService) GetAllocationByType(ctx context.Context, portfolioID string, force bool) (model.Allocation, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return model.Allocation{}, err
	}

	assetStats, err := s.collectAssetStats(ctx, portfolioID, portfolio.Currency, force)
	if err != nil {
		return model.Allocation{}, err
	}

	allocation := AllocationByType(assetStats)
	roundAllocation(&allocation)
	return allocation, nil
}

// GetAllocationByCategory computes the portfolio's value breakdown by
// user-defined category, with the uncategorized bucket last.
func (s *PortfolioService) GetAllocationByCategory(ctx context.Context, portfolioID string, force bool) (model.Allocation, error) {
	portfolio, err := s.portfolioRepo.GetPortfolio(portfolioID)
	if err != nil {
		return model.Allocation{}, err
	}

	assetStats, err := s.collectAssetStats(ctx, portfolioID, portfolio.Currency, force)
	if err != nil {
		return model.Allocation{}, err
	}

	categories, err := s.categoryRepo.GetCategories()
	if err != nil {
		return model.Allocation{}, err
	}

	allocation := AllocationByCategory(assetStats, categories)
	roundAllocation(&allocation)
	return allocation, nil
}

// collectAssetStats values every asset of one portfolio (or of all
// portfolios when portfolioID is empty) in the given comparison currency.
func (s *PortfolioService) collectAssetStats(ctx context.Context, portfolioID, displayCurrency string, force bool) ([]model.AssetStats, error) {
	assets, err := s.assetRepo.GetAssets(portfolioID)
	if err != nil {
		return nil, err
	}

	assetStats := make([]model.AssetStats, 0, len(assets))
	for _, asset := range assets {
		stats, err := s.assetService.ComputeStats(ctx, asset, displayCurrency, force)
		if err != nil {
			return nil, err
		}
		assetStats = append(assetStats, stats)
	}

	return assetStats, nil
}

// roundPortfolioStats rounds the monetary figures of a PortfolioStats to two
// decimals for presentation.
func roundPortfolioStats(stats *model.PortfolioStats) {
	stats.TotalCost = round(stats.TotalCost)
	stats.TotalValue = roundPtr(stats.TotalValue)
	stats.TotalGain = roundPtr(stats.TotalGain)
	stats.TotalGainPercent = roundPtr(stats.TotalGainPercent)
}

// roundAllocation rounds slice values and percentages to two decimals.
func roundAllocation(allocation *model.Allocation) {
	for i := range allocation.Slices {
		allocation.Slices[i].Value = round(allocation.Slices[i].Value)
		allocation.Slices[i].Percent = round(allocation.Slices[i].Percent)
	}
}
