package validation

import (
	"strings"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - currency: Must be a three-letter ISO code
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if err := ValidateCurrency(req.Currency); err != nil {
		errors["currency"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePortfolio validates a portfolio update request. All fields
// are optional, but if provided they must meet the same constraints as
// create.
func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Currency != nil {
		if err := ValidateCurrency(*req.Currency); err != nil {
			errors["currency"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
