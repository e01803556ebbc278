package service

import (
	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// ComputeAssetStats combines an asset, its resolved lots, an optional market
// quote and optional exchange rates into the asset's derived statistics.
//
// Inputs:
//   - quote: current unit price in the provider's quote currency, or nil
//     while unavailable. Ignored for simple asset types, whose price is
//     defined as their own average cost.
//   - priceToAssetRate: quote-currency to asset-currency rate; only consulted
//     when the quote currency differs from the asset's currency, and then
//     only for crypto assets. For other market types a foreign quote
//     currency leaves the valuation pending rather than inventing a second
//     conversion path.
//   - assetToDisplayRate: asset-currency to display-currency rate; only
//     consulted when the two differ.
//
// Every nullable output is nil precisely when an upstream input required for
// it was nil: a missing price or rate never degrades to zero or to average
// cost, and the native- and display-currency representations carry
// independent nullability. The function is deterministic and never errors.
func ComputeAssetStats(
	asset model.Asset,
	lots []model.Lot,
	quote *marketdata.Quote,
	priceToAssetRate *float64,
	assetToDisplayRate *float64,
	displayCurrency string,
) model.AssetStats {

	var totalQuantity, totalCost float64
	for _, lot := range lots {
		totalQuantity += lot.RemainingQuantity
		totalCost += lot.RemainingQuantity * lot.PurchasePrice
	}

	averageCost := 0.0
	if totalQuantity > 0 {
		averageCost = totalCost / totalQuantity
	}

	stats := model.AssetStats{
		Asset:           asset,
		TotalQuantity:   totalQuantity,
		AverageCost:     averageCost,
		TotalCost:       totalCost,
		DisplayCurrency: displayCurrency,
		Lots:            lots,
	}

	// Resolve the current unit price in the asset's own currency.
	var priceInAsset *float64
	switch {
	case asset.Type.IsSimple():
		// A simple asset is always at par with its own average cost.
		price := averageCost
		priceInAsset = &price

	case quote == nil:
		// Price pending; everything downstream stays nil.

	case quote.Currency == asset.Currency:
		price := quote.Price
		priceInAsset = &price

	case asset.Type.IsCrypto() && priceToAssetRate != nil:
		price := quote.Price * *priceToAssetRate
		priceInAsset = &price

	default:
		// Quote currency differs from the asset currency and no conversion
		// applies: stays pending.
	}

	if priceInAsset != nil {
		stats.CurrentPrice = priceInAsset
		value := totalQuantity * *priceInAsset
		stats.CurrentValue = &value
	}

	// Display-currency representation. Its nullability is independent of the
	// native one: the native value may be known while the display rate is
	// still pending, and vice versa the cost converts without any price.
	if asset.Currency == displayCurrency {
		cost := totalCost
		stats.CostInDisplay = &cost
		if stats.CurrentValue != nil {
			value := *stats.CurrentValue
			stats.ValueInDisplay = &value
		}
	} else if assetToDisplayRate != nil {
		cost := totalCost * *assetToDisplayRate
		stats.CostInDisplay = &cost
		if stats.CurrentValue != nil {
			value := *stats.CurrentValue * *assetToDisplayRate
			stats.ValueInDisplay = &value
		}
	}

	if stats.ValueInDisplay != nil && stats.CostInDisplay != nil {
		gain := *stats.ValueInDisplay - *stats.CostInDisplay
		stats.UnrealizedGain = &gain

		percent := 0.0
		if *stats.CostInDisplay > 0 {
			percent = 100 * gain / *stats.CostInDisplay
		}
		stats.UnrealizedGainPercent = &percent
	}

	return stats
}
