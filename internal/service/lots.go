package service

import (
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// ResolveLots converts an asset's transaction history into its set of open
// lots. Each buy transaction opens one lot; each sell carries an explicit
// reference to the lot it closes against (decided at sell-creation time, not
// inferred from date order). A lot's remaining quantity is its buy quantity
// minus the sum of all sells referencing it, clamped at zero; fully-sold
// lots are excluded.
//
// Lots are emitted in the same relative order as the buy transactions were
// supplied. Callers conventionally supply transactions date-ascending, which
// yields FIFO-consistent lot ordering for display.
//
// The function is pure: no storage access, no side effects, never an error.
// Sells referencing a nonexistent lot simply reduce nothing (see
// UnmatchedSells). An asset with no buys yields an empty slice.
func ResolveLots(transactions []model.Transaction) []model.Lot {
	soldByLot := make(map[string]float64)
	for _, t := range transactions {
		if t.IsSell() && t.LotID != nil {
			soldByLot[*t.LotID] += t.Quantity
		}
	}

	lots := []model.Lot{}
	for _, t := range transactions {
		if !t.IsBuy() {
			continue
		}

		remaining := t.Quantity - soldByLot[t.ID]
		if remaining <= 0 {
			continue
		}

		lots = append(lots, model.Lot{
			ID:                t.ID,
			AssetID:           t.AssetID,
			BuyTransactionID:  t.ID,
			OriginalQuantity:  t.Quantity,
			RemainingQuantity: remaining,
			PurchasePrice:     t.Price,
			PurchaseDate:      t.Date,
			Notes:             t.Notes,
		})
	}

	return lots
}

// RemainingLotQuantity returns the remaining quantity of the lot opened by
// the given buy transaction, clamped at zero. Used to validate new sells
// before creation.
func RemainingLotQuantity(transactions []model.Transaction, lotID string) float64 {
	var bought, sold float64
	for _, t := range transactions {
		switch {
		case t.IsBuy() && t.ID == lotID:
			bought = t.Quantity
		case t.IsSell() && t.LotID != nil && *t.LotID == lotID:
			sold += t.Quantity
		}
	}

	remaining := bought - sold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UnmatchedSells returns the sells that reduce no lot: those with no lot
// reference at all, or one that matches no buy transaction. They are still
// part of the asset's recorded history but excluded from lot math, and are
// reported separately so their economic effect is not silently dropped.
func UnmatchedSells(transactions []model.Transaction) []model.Transaction {
	buyIDs := make(map[string]bool)
	for _, t := range transactions {
		if t.IsBuy() {
			buyIDs[t.ID] = true
		}
	}

	unmatched := []model.Transaction{}
	for _, t := range transactions {
		if !t.IsSell() {
			continue
		}
		if t.LotID == nil || !buyIDs[*t.LotID] {
			unmatched = append(unmatched, t)
		}
	}

	return unmatched
}

// RealizedGain sums the realized result of all matched sells: for each sell
// with a valid lot reference, (sell price - lot purchase price) * quantity,
// minus the sell's fee, in the asset's currency. Unmatched sells contribute
// nothing here; see UnmatchedSells.
func RealizedGain(transactions []model.Transaction) float64 {
	buyPrice := make(map[string]float64)
	for _, t := range transactions {
		if t.IsBuy() {
			buyPrice[t.ID] = t.Price
		}
	}

	var gain float64
	for _, t := range transactions {
		if !t.IsSell() || t.LotID == nil {
			continue
		}
		purchase, ok := buyPrice[*t.LotID]
		if !ok {
			continue
		}
		gain += (t.Price-purchase)*t.Quantity - t.Fee
	}

	return gain
}
