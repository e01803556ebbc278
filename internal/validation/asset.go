package validation

import (
	"strings"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - symbol: Must be non-empty
//   - type: Must be a known asset type
//   - currency: Must be a three-letter ISO code
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = "must be a valid UUID"
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if !model.AssetType(req.Type).IsValid() {
		errors["type"] = "unknown asset type"
	}

	if err := ValidateCurrency(req.Currency); err != nil {
		errors["currency"] = err.Error()
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["categoryId"] = "must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAsset validates an asset update request.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Symbol != nil && strings.TrimSpace(*req.Symbol) == "" {
		errors["symbol"] = "symbol cannot be empty"
	}

	if req.Type != nil && !model.AssetType(*req.Type).IsValid() {
		errors["type"] = "unknown asset type"
	}

	if req.Currency != nil {
		if err := ValidateCurrency(*req.Currency); err != nil {
			errors["currency"] = err.Error()
		}
	}

	// An empty categoryId clears the reference, so only non-empty values
	// need to parse as UUIDs.
	if req.CategoryID != nil && *req.CategoryID != "" {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["categoryId"] = "must be a valid UUID"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
