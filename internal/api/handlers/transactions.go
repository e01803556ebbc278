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

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionsPerAsset handles GET requests to retrieve all transactions of
// an asset, ordered chronologically.
//
// Endpoint: GET /api/transaction/asset/{uuid}
// Response: 200 OK with array of transactions
// Error: 404 Not Found if the asset does not exist
func (h *TransactionHandler) TransactionsPerAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	transactions, err := h.transactionService.GetTransactionsByAsset(assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with the transaction
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a buy or sell.
// A sell may reference the buy lot it consumes via lotId; the referenced
// lot must exist on the same asset and hold enough remaining quantity.
//
// Endpoint: POST /api/transaction
// Response: 201 Created with the created transaction
// Error: 400 Bad Request on malformed body, validation failure, or an
// over-sold lot
// Error: 404 Not Found if the asset or referenced lot does not exist
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrLotNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLotNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientQuantity):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientQuantity.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to amend a transaction. The lot
// reference of a sell is immutable; amending a sell's quantity re-checks
// the referenced lot's remaining capacity.
//
// Endpoint: PUT /api/transaction/{uuid}
// Response: 200 OK with the updated transaction
// Error: 400 Bad Request on malformed body, validation failure, a changed
// lot reference, or an over-sold lot
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(transactionID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrLotReferenceImmutable):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrLotReferenceImmutable.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientQuantity):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientQuantity.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// Deleting a buy releases its lot; sells that referenced it become
// unmatched and stop affecting holdings.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
