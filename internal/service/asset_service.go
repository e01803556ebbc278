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

// AssetService handles asset-related business logic: CRUD plus the
// per-asset valuation pipeline from transactions through lots, prices and
// rates to statistics.
type AssetService struct {
	assetRepo       *repository.AssetRepository
	portfolioRepo   *repository.PortfolioRepository
	categoryRepo    *repository.CategoryRepository
	transactionRepo *repository.TransactionRepository
	priceService    *PriceService
	currencyService *CurrencyService
}

// NewAssetService creates a new AssetService with the provided dependencies.
func NewAssetService(
	assetRepo *repository.AssetRepository,
	portfolioRepo *repository.PortfolioRepository,
	categoryRepo *repository.CategoryRepository,
	transactionRepo *repository.TransactionRepository,
	priceService *PriceService,
	currencyService *CurrencyService,
) *AssetService {
	return &AssetService{
		assetRepo:       assetRepo,
		portfolioRepo:   portfolioRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		priceService:    priceService,
		currencyService: currencyService,
	}
}

// GetAsset retrieves one asset by ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	return s.assetRepo.GetAsset(assetID)
}

// GetAssets retrieves assets, optionally filtered by portfolio. An empty
// portfolioID returns assets across all portfolios.
func (s *AssetService) GetAssets(portfolioID string) ([]model.Asset, error) {
	return s.assetRepo.GetAssets(portfolioID)
}

// CreateAsset creates a new asset in the given portfolio. The symbol is
// stored uppercased; the portfolio and (when given) category must exist.
func (s *AssetService) CreateAsset(req request.CreateAssetRequest) (model.Asset, error) {
	if _, err := s.portfolioRepo.GetPortfolio(req.PortfolioID); err != nil {
		return model.Asset{}, err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategory(*req.CategoryID); err != nil {
			return model.Asset{}, err
		}
	}

	asset := model.Asset{
		ID:          uuid.New().String(),
		PortfolioID: req.PortfolioID,
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:        req.Name,
		Type:        model.AssetType(req.Type),
		Currency:    strings.ToUpper(req.Currency),
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.assetRepo.CreateAsset(asset); err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}

// UpdateAsset applies the non-nil fields of the request to an existing
// asset.
func (s *AssetService) UpdateAsset(assetID string, req request.UpdateAssetRequest) (model.Asset, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return model.Asset{}, err
	}

	if req.Symbol != nil {
		asset.Symbol = strings.ToUpper(strings.TrimSpace(*req.Symbol))
	}
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Type != nil {
		asset.Type = model.AssetType(*req.Type)
	}
	if req.Currency != nil {
		asset.Currency = strings.ToUpper(*req.Currency)
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			asset.CategoryID = nil
		} else {
			if _, err := s.categoryRepo.GetCategory(*req.CategoryID); err != nil {
				return model.Asset{}, err
			}
			asset.CategoryID = req.CategoryID
		}
	}
	if req.Tags != nil {
		asset.Tags = *req.Tags
	}

	if err := s.assetRepo.UpdateAsset(asset); err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}

// DeleteAsset removes an asset and, via the cascading foreign key, all of
// its transactions.
func (s *AssetService) DeleteAsset(assetID string) error {
	return s.assetRepo.DeleteAsset(assetID)
}

// GetLots resolves the asset's current open lots from its live transaction
// set. Lots are derived on every read and never persisted: they are a pure
// function of the transactions, so there is no cache to invalidate.
func (s *AssetService) GetLots(assetID string) ([]model.Lot, error) {
	if _, err := s.assetRepo.GetAsset(assetID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactionsByAsset(assetID)
	if err != nil {
		return nil, err
	}

	return ResolveLots(transactions), nil
}

// GetAssetStats computes the asset's full statistics in the given display
// currency (defaulting to the owning portfolio's currency). force bypasses
// the price and rate caches.
func (s *AssetService) GetAssetStats(ctx context.Context, assetID, displayCurrency string, force bool) (model.AssetStats, error) {
	asset, err := s.assetRepo.GetAsset(assetID)
	if err != nil {
		return model.AssetStats{}, err
	}

	if displayCurrency == "" {
		portfolio, err := s.portfolioRepo.GetPortfolio(asset.PortfolioID)
		if err != nil {
			return model.AssetStats{}, err
		}
		displayCurrency = portfolio.Currency
	}

	return s.ComputeStats(ctx, asset, strings.ToUpper(displayCurrency), force)
}

// ComputeStats runs the valuation pipeline for one already-loaded asset.
// Also used by the portfolio aggregation to value every asset of a
// portfolio in one comparison currency.
//
// The price and rate lookups are the only suspension points; everything
// after them is a synchronous pure recomputation over resolved inputs. A
// missing price or rate flows through as nil fields on the result, never
// as an error, so one unavailable provider cannot block a whole portfolio.
func (s *AssetService) ComputeStats(ctx context.Context, asset model.Asset, displayCurrency string, force bool) (model.AssetStats, error) {
	transactions, err := s.transactionRepo.GetTransactionsByAsset(asset.ID)
	if err != nil {
		return model.AssetStats{}, err
	}

	lots := ResolveLots(transactions)

	quote := s.priceService.GetPrice(ctx, asset.Type, asset.Symbol, asset.Currency, force)

	// A crypto quote in a foreign quote currency is converted into the
	// asset's currency; other market types stay pending on a currency
	// mismatch (handled inside ComputeAssetStats).
	var priceToAssetRate *float64
	if quote != nil && quote.Currency != asset.Currency && asset.Type.IsCrypto() {
		priceToAssetRate = s.currencyService.GetRate(ctx, quote.Currency, asset.Currency, force)
	}

	var assetToDisplayRate *float64
	if asset.Currency != displayCurrency {
		assetToDisplayRate = s.currencyService.GetRate(ctx, asset.Currency, displayCurrency, force)
	}

	stats := ComputeAssetStats(asset, lots, quote, priceToAssetRate, assetToDisplayRate, displayCurrency)

	stats.RealizedGain = RealizedGain(transactions)
	for _, sell := range UnmatchedSells(transactions) {
		stats.UnmatchedSellQuantity += sell.Quantity
	}

	roundAssetStats(&stats)

	return stats, nil
}

// roundAssetStats rounds the monetary figures of an AssetStats to two
// decimals for presentation. Quantities are left untouched: fractional
// crypto holdings would lose meaning at two decimals.
func roundAssetStats(stats *model.AssetStats) {
	stats.AverageCost = round(stats.AverageCost)
	stats.TotalCost = round(stats.TotalCost)
	stats.RealizedGain = round(stats.RealizedGain)
	stats.CurrentValue = roundPtr(stats.CurrentValue)
	stats.CostInDisplay = roundPtr(stats.CostInDisplay)
	stats.ValueInDisplay = roundPtr(stats.ValueInDisplay)
	stats.UnrealizedGain = roundPtr(stats.UnrealizedGain)
	stats.UnrealizedGainPercent = roundPtr(stats.UnrealizedGainPercent)
}
