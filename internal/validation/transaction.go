package validation

import (
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - assetId: Must be a valid UUID
//   - type: Must be "buy" or "sell"
//   - quantity: Must be positive
//   - price: Must be non-negative
//   - fee: Must be non-negative
//   - date: Must parse as YYYY-MM-DD
//
// A lotId is only meaningful on sells and must be a valid UUID when set.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AssetID); err != nil {
		errors["assetId"] = "must be a valid UUID"
	}

	if req.Type != model.TransactionBuy && req.Type != model.TransactionSell {
		errors["type"] = "must be buy or sell"
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "must be positive"
	}

	if req.Price < 0 {
		errors["price"] = "cannot be negative"
	}

	if req.Fee < 0 {
		errors["fee"] = "cannot be negative"
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = "must be YYYY-MM-DD"
	}

	if req.LotID != nil && *req.LotID != "" {
		if req.Type == model.TransactionBuy {
			errors["lotId"] = "only sells can reference a lot"
		} else if err := ValidateUUID(*req.LotID); err != nil {
			errors["lotId"] = "must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "must be positive"
	}

	if req.Price != nil && *req.Price < 0 {
		errors["price"] = "cannot be negative"
	}

	if req.Fee != nil && *req.Fee < 0 {
		errors["fee"] = "cannot be negative"
	}

	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = "must be YYYY-MM-DD"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
