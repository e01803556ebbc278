package service

import (
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// ComputePortfolioStats aggregates per-asset statistics (already expressed
// in one comparison currency) into portfolio totals. The identity fields
// describe either a real portfolio or the synthetic "All Portfolios"
// aggregate.
//
// Total cost sums the cost contributions that are known; an asset whose
// currency conversion is pending contributes nothing and is counted as
// pending instead. Total value is nil whenever any asset's display value is
// still unknown; a total must never silently equal "sum of the assets that
// happened to load" presented as complete.
//
// The computation is a full recompute over its inputs on every call:
// idempotent, order-independent (up to float associativity), no hidden
// state.
func ComputePortfolioStats(id, name, currency string, assets []model.AssetStats) model.PortfolioStats {
	stats := model.PortfolioStats{
		ID:         id,
		Name:       name,
		Currency:   currency,
		AssetCount: len(assets),
	}

	var totalValue float64
	for _, asset := range assets {
		if asset.CostInDisplay != nil {
			stats.TotalCost += *asset.CostInDisplay
		}
		if asset.ValueInDisplay == nil {
			stats.PendingCount++
			continue
		}
		totalValue += *asset.ValueInDisplay
	}

	if stats.PendingCount == 0 {
		stats.TotalValue = &totalValue

		gain := totalValue - stats.TotalCost
		stats.TotalGain = &gain

		percent := 0.0
		if stats.TotalCost > 0 {
			percent = 100 * gain / stats.TotalCost
		}
		stats.TotalGainPercent = &percent
	}

	return stats
}
