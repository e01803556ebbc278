package validation

import (
	"strings"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
)

// ValidateCreateCategory validates a category creation request.
func ValidateCreateCategory(req request.CreateCategoryRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.Color != "" && !isHexColor(req.Color) {
		errors["color"] = "must be a hex color like #RRGGBB"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateCategory validates a category update request.
func ValidateUpdateCategory(req request.UpdateCategoryRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Color != nil && *req.Color != "" && !isHexColor(*req.Color) {
		errors["color"] = "must be a hex color like #RRGGBB"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
