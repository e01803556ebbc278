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

// AssetHandler handles asset-related HTTP requests.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the assetService.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to retrieve assets, optionally filtered by
// portfolio.
//
// Endpoint: GET /api/asset?portfolio={uuid}
// Response: 200 OK with array of assets
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolio")

	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
			return
		}
	}

	assets, err := h.assetService.GetAssets(portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single asset by ID.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with the asset
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to add an asset to a portfolio.
//
// Endpoint: POST /api/asset
// Response: 201 Created with the created asset
// Error: 400 Bad Request if the body is malformed or validation fails
// Error: 404 Not Found if the portfolio or category does not exist
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPortfolioNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrCategoryNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to update an existing asset.
// Sending an empty categoryId clears the category reference.
//
// Endpoint: PUT /api/asset/{uuid}
// Response: 200 OK with the updated asset
// Error: 400 Bad Request if the body is malformed or validation fails
// Error: 404 Not Found if the asset or category does not exist
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(assetID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrCategoryNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update asset", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset.
// Deleting an asset cascades to its transactions.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(assetID); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AssetStats handles GET requests to compute valuation statistics for one
// asset. The display currency defaults to the owning portfolio's base
// currency and can be overridden with ?currency=USD. Values waiting on
// market data come back as null.
//
// Endpoint: GET /api/asset/{uuid}/stats?currency=USD&force=true
// Response: 200 OK with AssetStats
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) AssetStats(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")
	currency := r.URL.Query().Get("currency")
	force := queryBool(r, "force")

	if currency != "" {
		if err := validation.ValidateCurrency(currency); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid currency", err.Error())
			return
		}
	}

	stats, err := h.assetService.GetAssetStats(r.Context(), assetID, currency, force)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// AssetLots handles GET requests to retrieve the open lots of an asset,
// derived from its transaction history.
//
// Endpoint: GET /api/asset/{uuid}/lots
// Response: 200 OK with array of lots
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) AssetLots(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	lots, err := h.assetService.GetLots(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, lots)
}
