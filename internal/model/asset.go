package model

import "time"

// AssetType enumerates the supported kinds of assets. The set is closed:
// validation rejects anything outside it.
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeETF        AssetType = "etf"
	AssetTypeCrypto     AssetType = "crypto"
	AssetTypeBitcoin    AssetType = "bitcoin"
	AssetTypeBond       AssetType = "bond"
	AssetTypeCommodity  AssetType = "commodity"
	AssetTypeCash       AssetType = "cash"
	AssetTypeRealEstate AssetType = "realEstate"
	AssetTypeOther      AssetType = "other"
)

// AssetTypes lists every valid asset type.
var AssetTypes = []AssetType{
	AssetTypeStock, AssetTypeETF, AssetTypeCrypto, AssetTypeBitcoin,
	AssetTypeBond, AssetTypeCommodity, AssetTypeCash, AssetTypeRealEstate,
	AssetTypeOther,
}

// IsValid reports whether t is one of the known asset types.
func (t AssetType) IsValid() bool {
	for _, v := range AssetTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsSimple reports whether t is a "simple" type: one that has no
// ticker-derived market price. Simple assets are always valued at their own
// average cost.
func (t AssetType) IsSimple() bool {
	switch t {
	case AssetTypeCash, AssetTypeRealEstate, AssetTypeOther:
		return true
	}
	return false
}

// IsCrypto reports whether t is priced through the crypto market-data
// provider rather than the general one.
func (t AssetType) IsCrypto() bool {
	return t == AssetTypeCrypto || t == AssetTypeBitcoin
}

// RefreshInterval returns how long a cached price for this asset type stays
// fresh. A cached quote younger than this must be reused instead of
// re-fetched.
func (t AssetType) RefreshInterval() time.Duration {
	switch {
	case t.IsCrypto():
		return 5 * time.Minute
	case t == AssetTypeBond:
		return 60 * time.Minute
	case t.IsSimple():
		return 24 * time.Hour
	default: // stock, etf, commodity
		return 15 * time.Minute
	}
}

// Asset represents one holding inside a portfolio.
type Asset struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	Symbol      string    `json:"symbol"` // stored uppercased
	Name        string    `json:"name,omitempty"`
	Type        AssetType `json:"type"`
	Currency    string    `json:"currency"` // ISO 4217 code
	CategoryID  *string   `json:"categoryId,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
