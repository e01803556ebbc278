package model

import "time"

// Lot represents the still-open portion of one buy transaction. Lots are
// derived, never persisted: they are recomputed from the live transaction set
// on every read.
//
// RemainingQuantity is the buy's quantity minus the sum of all sells that
// reference this lot, clamped at zero. A lot with no remaining quantity is
// closed and excluded from the active lot set.
type Lot struct {
	ID                string    `json:"id"` // equals the originating buy transaction's ID
	AssetID           string    `json:"assetId"`
	BuyTransactionID  string    `json:"buyTransactionId"`
	OriginalQuantity  float64   `json:"originalQuantity"`
	RemainingQuantity float64   `json:"remainingQuantity"`
	PurchasePrice     float64   `json:"purchasePrice"`
	PurchaseDate      time.Time `json:"purchaseDate"`
	Notes             string    `json:"notes,omitempty"`
}
