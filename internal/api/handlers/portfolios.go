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

// PortfolioHandler handles portfolio-related HTTP requests.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to retrieve all portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of portfolios
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, _ *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio by ID.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with the portfolio
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to create a new portfolio.
//
// Endpoint: POST /api/portfolio
// Response: 201 Created with the created portfolio
// Error: 400 Bad Request if the body is malformed or validation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests to update an existing portfolio.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Response: 200 OK with the updated portfolio
// Error: 400 Bad Request if the body is malformed or validation fails
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(portfolioID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio.
// Deleting a portfolio cascades to its assets and their transactions.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// PortfolioStats handles GET requests to compute aggregate statistics for
// one portfolio in its base currency. Values still waiting on market data
// are reported as null rather than omitted or zeroed.
//
// Endpoint: GET /api/portfolio/{uuid}/stats?force=true
// Response: 200 OK with PortfolioStats
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) PortfolioStats(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	force := queryBool(r, "force")

	stats, err := h.portfolioService.GetPortfolioStats(r.Context(), portfolioID, force)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// PortfolioAssets handles GET requests to compute per-asset statistics for
// every asset in a portfolio, valued in the portfolio's base currency.
//
// Endpoint: GET /api/portfolio/{uuid}/assets?force=true
// Response: 200 OK with array of AssetStats
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) PortfolioAssets(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	force := queryBool(r, "force")

	stats, err := h.portfolioService.GetPortfolioAssetStats(r.Context(), portfolioID, force)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// OverviewStats handles GET requests to compute aggregate statistics across
// all portfolios. The display currency defaults to the first portfolio's
// base currency and can be overridden with ?currency=EUR.
//
// Endpoint: GET /api/overview/stats?currency=EUR&force=true
// Response: 200 OK with PortfolioStats under the synthetic "all" identity
func (h *PortfolioHandler) OverviewStats(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	force := queryBool(r, "force")

	if currency != "" {
		if err := validation.ValidateCurrency(currency); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid currency", err.Error())
			return
		}
	}

	stats, err := h.portfolioService.GetOverviewStats(r.Context(), currency, force)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// AllocationByType handles GET requests to compute a portfolio's value
// breakdown by asset type. Assets with pending values are excluded.
//
// Endpoint: GET /api/portfolio/{uuid}/allocation/type?force=true
// Response: 200 OK with Allocation
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) AllocationByType(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	force := queryBool(r, "force")

	allocation, err := h.portfolioService.GetAllocationByType(r.Context(), portfolioID, force)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocation)
}

// AllocationByCategory handles GET requests to compute a portfolio's value
// breakdown by user-defined category, with the uncategorized bucket last.
//
// Endpoint: GET /api/portfolio/{uuid}/allocation/category?force=true
// Response: 200 OK with Allocation
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) AllocationByCategory(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	force := queryBool(r, "force")

	allocation, err := h.portfolioService.GetAllocationByCategory(r.Context(), portfolioID, force)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocation)
}
