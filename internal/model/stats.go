package model

// Nullable monetary fields below are *float64: nil means "not yet known"
// (price or exchange rate still unavailable), never zero. The engine does not
// distinguish "still loading" from "provider failed": both are nil, and the
// caller decides whether to retry.

// AssetStats extends an Asset with derived valuation figures.
//
// TotalQuantity, AverageCost and TotalCost are pure functions of the lot set
// and therefore always known, expressed in the asset's own currency.
// CurrentPrice/CurrentValue are in the asset's currency and are nil while the
// market price (or a price-currency conversion) is unavailable.
// CostInDisplay/ValueInDisplay are the same figures converted into
// DisplayCurrency; their nullability is independent of the native fields,
// since the asset-to-display rate may be missing while the native value is
// known.
type AssetStats struct {
	Asset

	TotalQuantity float64 `json:"totalQuantity"`
	AverageCost   float64 `json:"averageCost"`
	TotalCost     float64 `json:"totalCost"`

	CurrentPrice *float64 `json:"currentPrice"`
	CurrentValue *float64 `json:"currentValue"`

	DisplayCurrency string   `json:"displayCurrency"`
	CostInDisplay   *float64 `json:"costInDisplay"`
	ValueInDisplay  *float64 `json:"valueInDisplay"`

	UnrealizedGain        *float64 `json:"unrealizedGain"`
	UnrealizedGainPercent *float64 `json:"unrealizedGainPercent"`

	// RealizedGain sums (sell price - lot purchase price) * quantity - fee
	// over sells with a valid lot reference, in the asset's currency.
	RealizedGain float64 `json:"realizedGain"`

	// UnmatchedSellQuantity totals sell quantity that references no lot (or a
	// nonexistent one). Such sells reduce nothing and are reported here
	// instead of being silently dropped.
	UnmatchedSellQuantity float64 `json:"unmatchedSellQuantity,omitempty"`

	Lots []Lot `json:"lots"`
}

// PortfolioStats aggregates AssetStats across one portfolio, or across all
// portfolios under the synthetic "All Portfolios" identity.
//
// TotalValue is nil whenever any included asset's display-currency value is
// still unknown: a total must never silently equal "sum of the assets that
// happened to load". TotalCost sums the cost contributions that are known;
// assets whose currency conversion is pending are excluded from it and
// counted in PendingCount.
type PortfolioStats struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`

	TotalValue       *float64 `json:"totalValue"`
	TotalCost        float64  `json:"totalCost"`
	TotalGain        *float64 `json:"totalGain"`
	TotalGainPercent *float64 `json:"totalGainPercent"`

	AssetCount   int `json:"assetCount"`
	PendingCount int `json:"pendingCount"`
}

// AllocationSlice is one bucket of an allocation breakdown.
type AllocationSlice struct {
	Key     string  `json:"key"` // asset type or category name
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Allocation is a percentage breakdown of resolved, positive asset values.
// Assets whose value is unknown are excluded entirely: an unknown value
// cannot be allocated a percentage.
type Allocation struct {
	Slices []AllocationSlice `json:"slices"`

	// HasCategories is set by the category breakdown when at least one asset
	// references a category, so callers can suppress the breakdown when
	// nothing is categorized.
	HasCategories bool `json:"hasCategories,omitempty"`
}
