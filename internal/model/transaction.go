package model

import "time"

// Transaction type values. The set is closed: a transaction is either a buy
// or a sell.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction represents one buy or sell event for an asset.
//
// Quantity and Price are positive, Fee is non-negative; all three are
// expressed in the asset's currency. LotID is set on sells only and
// identifies the buy transaction whose lot the sell reduces. It is immutable
// once the sell is created.
type Transaction struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"assetId"`
	Type      string    `json:"type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Fee       float64   `json:"fee"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	LotID     *string   `json:"lotId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// IsBuy reports whether the transaction opens a lot.
func (t Transaction) IsBuy() bool { return t.Type == TransactionBuy }

// IsSell reports whether the transaction reduces a lot.
func (t Transaction) IsSell() bool { return t.Type == TransactionSell }
