package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/api/response"
	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/service"
	"github.com/edineros/portfolio-tracker-backend/internal/validation"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Categories handles GET requests to retrieve all categories, ordered by
// sort order then name.
//
// Endpoint: GET /api/category
// Response: 200 OK with array of categories
func (h *CategoryHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCategories.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET requests to retrieve a single category by ID.
//
// Endpoint: GET /api/category/{uuid}
// Response: 200 OK with the category
// Error: 404 Not Found if the category does not exist
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCategories.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST requests to create a new category.
//
// Endpoint: POST /api/category
// Response: 201 Created with the created category
// Error: 400 Bad Request if the body is malformed or validation fails
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT requests to update an existing category.
//
// Endpoint: PUT /api/category/{uuid}
// Response: 200 OK with the updated category
// Error: 404 Not Found if the category does not exist
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE requests to remove a category.
// Assets referencing the category fall back to uncategorized.
//
// Endpoint: DELETE /api/category/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the category does not exist
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
