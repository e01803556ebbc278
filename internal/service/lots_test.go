package service

import (
	"testing"
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

func buyTx(id string, quantity, price float64, date string) model.Transaction {
	return model.Transaction{
		ID:       id,
		AssetID:  "asset-1",
		Type:     model.TransactionBuy,
		Quantity: quantity,
		Price:    price,
		Date:     mustDate(date),
	}
}

func sellTx(id, lotID string, quantity, price float64, date string) model.Transaction {
	tx := model.Transaction{
		ID:       id,
		AssetID:  "asset-1",
		Type:     model.TransactionSell,
		Quantity: quantity,
		Price:    price,
		Date:     mustDate(date),
	}
	if lotID != "" {
		tx.LotID = &lotID
	}
	return tx
}

func mustDate(date string) time.Time {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestResolveLots(t *testing.T) {
	t.Run("buy opens one lot", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
		})

		if len(lots) != 1 {
			t.Fatalf("Expected 1 lot, got %d", len(lots))
		}
		lot := lots[0]
		if lot.ID != "b1" || lot.BuyTransactionID != "b1" {
			t.Errorf("Expected lot identified by its buy transaction, got ID=%s buy=%s", lot.ID, lot.BuyTransactionID)
		}
		if lot.OriginalQuantity != 10 || lot.RemainingQuantity != 10 {
			t.Errorf("Expected quantities 10/10, got %v/%v", lot.OriginalQuantity, lot.RemainingQuantity)
		}
		if lot.PurchasePrice != 100 {
			t.Errorf("Expected purchase price 100, got %v", lot.PurchasePrice)
		}
	})

	t.Run("sell reduces only the referenced lot", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			buyTx("b2", 5, 120, "2024-02-02"),
			sellTx("s1", "b1", 4, 130, "2024-03-02"),
		})

		if len(lots) != 2 {
			t.Fatalf("Expected 2 lots, got %d", len(lots))
		}
		if lots[0].RemainingQuantity != 6 {
			t.Errorf("Expected referenced lot reduced to 6, got %v", lots[0].RemainingQuantity)
		}
		if lots[1].RemainingQuantity != 5 {
			t.Errorf("Expected untouched lot at 5, got %v", lots[1].RemainingQuantity)
		}
	})

	t.Run("fully sold lot is excluded", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			sellTx("s1", "b1", 6, 110, "2024-02-02"),
			sellTx("s2", "b1", 4, 115, "2024-03-02"),
		})

		if len(lots) != 0 {
			t.Fatalf("Expected no open lots, got %d", len(lots))
		}
	})

	t.Run("overselling clamps at zero instead of going negative", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			sellTx("s1", "b1", 15, 110, "2024-02-02"),
		})

		if len(lots) != 0 {
			t.Fatalf("Expected oversold lot excluded, got %d lots", len(lots))
		}
	})

	t.Run("sell referencing unknown lot reduces nothing", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			sellTx("s1", "no-such-lot", 4, 110, "2024-02-02"),
		})

		if len(lots) != 1 || lots[0].RemainingQuantity != 10 {
			t.Fatalf("Expected untouched lot of 10, got %+v", lots)
		}
	})

	t.Run("no buys yields empty slice", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			sellTx("s1", "", 4, 110, "2024-02-02"),
		})

		if lots == nil || len(lots) != 0 {
			t.Fatalf("Expected empty non-nil slice, got %#v", lots)
		}
	})

	t.Run("lots keep buy order", func(t *testing.T) {
		lots := ResolveLots([]model.Transaction{
			buyTx("b1", 1, 100, "2024-01-02"),
			buyTx("b2", 2, 100, "2024-02-02"),
			buyTx("b3", 3, 100, "2024-03-02"),
		})

		if len(lots) != 3 {
			t.Fatalf("Expected 3 lots, got %d", len(lots))
		}
		for i, want := range []string{"b1", "b2", "b3"} {
			if lots[i].ID != want {
				t.Errorf("Expected lot %d to be %s, got %s", i, want, lots[i].ID)
			}
		}
	})

	// Total remaining quantity must equal buys minus matched sells no
	// matter how the sells are distributed.
	t.Run("quantity is conserved", func(t *testing.T) {
		transactions := []model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			buyTx("b2", 20, 105, "2024-01-03"),
			buyTx("b3", 5, 95, "2024-01-04"),
			sellTx("s1", "b2", 7, 110, "2024-02-02"),
			sellTx("s2", "b1", 3, 112, "2024-02-03"),
			sellTx("s3", "b2", 2, 113, "2024-02-04"),
		}

		var remaining float64
		for _, lot := range ResolveLots(transactions) {
			remaining += lot.RemainingQuantity
		}

		if want := 10.0 + 20 + 5 - 7 - 3 - 2; remaining != float64(want) {
			t.Errorf("Expected total remaining %v, got %v", want, remaining)
		}
	})
}

func TestRemainingLotQuantity(t *testing.T) {
	transactions := []model.Transaction{
		buyTx("b1", 10, 100, "2024-01-02"),
		sellTx("s1", "b1", 4, 110, "2024-02-02"),
	}

	t.Run("subtracts matched sells", func(t *testing.T) {
		if got := RemainingLotQuantity(transactions, "b1"); got != 6 {
			t.Errorf("Expected 6 remaining, got %v", got)
		}
	})

	t.Run("unknown lot has zero remaining", func(t *testing.T) {
		if got := RemainingLotQuantity(transactions, "nope"); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})

	t.Run("clamps at zero when oversold", func(t *testing.T) {
		oversold := append([]model.Transaction{}, transactions...)
		oversold = append(oversold, sellTx("s2", "b1", 9, 120, "2024-03-02"))

		if got := RemainingLotQuantity(oversold, "b1"); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})
}

func TestUnmatchedSells(t *testing.T) {
	transactions := []model.Transaction{
		buyTx("b1", 10, 100, "2024-01-02"),
		sellTx("s1", "b1", 4, 110, "2024-02-02"),
		sellTx("s2", "", 2, 110, "2024-02-03"),
		sellTx("s3", "gone", 1, 110, "2024-02-04"),
	}

	unmatched := UnmatchedSells(transactions)
	if len(unmatched) != 2 {
		t.Fatalf("Expected 2 unmatched sells, got %d", len(unmatched))
	}
	if unmatched[0].ID != "s2" || unmatched[1].ID != "s3" {
		t.Errorf("Expected s2 and s3 unmatched, got %s and %s", unmatched[0].ID, unmatched[1].ID)
	}
}

func TestRealizedGain(t *testing.T) {
	t.Run("matched sells realize against their lot price", func(t *testing.T) {
		transactions := []model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			sellTx("s1", "b1", 4, 130, "2024-02-02"),
		}

		// (130 - 100) * 4 = 120
		if got := RealizedGain(transactions); got != 120 {
			t.Errorf("Expected realized gain 120, got %v", got)
		}
	})

	t.Run("fees reduce the realized gain", func(t *testing.T) {
		sell := sellTx("s1", "b1", 4, 130, "2024-02-02")
		sell.Fee = 5

		transactions := []model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			sell,
		}

		if got := RealizedGain(transactions); got != 115 {
			t.Errorf("Expected realized gain 115, got %v", got)
		}
	})

	t.Run("unmatched sells contribute nothing", func(t *testing.T) {
		transactions := []model.Transaction{
			buyTx("b1", 10, 100, "2024-01-02"),
			sellTx("s1", "gone", 4, 130, "2024-02-02"),
			sellTx("s2", "", 2, 130, "2024-02-03"),
		}

		if got := RealizedGain(transactions); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})
}
