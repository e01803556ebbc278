package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
)

// TransactionService handles transaction-related business logic. It guards
// the lot-accounting invariants at the write boundary: a sell may not exceed
// the remaining quantity of the lot it references, and a sell's lot
// reference is immutable once created. The read side (lot resolution) stays
// tolerant of inconsistency; the write side prevents it.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTransactionService creates a new TransactionService with the provided repositories.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// GetTransaction retrieves one transaction by ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// GetTransactionsByAsset retrieves all transactions for one asset, date
// ascending.
func (s *TransactionService) GetTransactionsByAsset(assetID string) ([]model.Transaction, error) {
	if _, err := s.assetRepo.GetAsset(assetID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactionsByAsset(assetID)
}

// CreateTransaction creates a buy or sell transaction.
//
// For a sell carrying a lot reference, the referenced buy must exist on the
// same asset and hold enough remaining quantity; a sell without a lot
// reference is recorded as-is (it reduces no lot and shows up as an
// unmatched sell in statistics).
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	if _, err := s.assetRepo.GetAsset(req.AssetID); err != nil {
		return model.Transaction{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.Type == model.TransactionSell && req.LotID != nil {
		if err := s.validateSellAgainstLot(req.AssetID, *req.LotID, req.Quantity, ""); err != nil {
			return model.Transaction{}, err
		}
	}

	transaction := model.Transaction{
		ID:        uuid.New().String(),
		AssetID:   req.AssetID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Fee:       req.Fee,
		Date:      date.UTC(),
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if req.Type == model.TransactionSell {
		transaction.LotID = req.LotID
	}

	if err := s.transactionRepo.CreateTransaction(transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// UpdateTransaction corrects quantity, price, fee, date or notes of an
// existing transaction. The lot reference is immutable: a request that
// tries to change it is rejected. A sell's corrected quantity is
// re-validated against its lot, excluding the sell's own current quantity
// from the sold total.
func (s *TransactionService) UpdateTransaction(transactionID string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.LotID != nil {
		changed := transaction.LotID == nil || *req.LotID != *transaction.LotID
		if changed {
			return model.Transaction{}, apperrors.ErrLotReferenceImmutable
		}
	}

	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Fee != nil {
		transaction.Fee = *req.Fee
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Date = date.UTC()
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}

	if transaction.IsSell() && transaction.LotID != nil && req.Quantity != nil {
		if err := s.validateSellAgainstLot(transaction.AssetID, *transaction.LotID, transaction.Quantity, transaction.ID); err != nil {
			return model.Transaction{}, err
		}
	}

	if err := s.transactionRepo.UpdateTransaction(transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction. Deleting a buy whose lot has
// sells referencing it leaves those sells unmatched; the lot resolver
// tolerates that and statistics report them separately.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	return s.transactionRepo.DeleteTransaction(transactionID)
}

// validateSellAgainstLot checks that the lot exists on the asset, is a buy,
// and still holds enough remaining quantity for the sell. excludeSellID
// removes one existing sell from the sold total when re-validating an
// update.
func (s *TransactionService) validateSellAgainstLot(assetID, lotID string, quantity float64, excludeSellID string) error {
	transactions, err := s.transactionRepo.GetTransactionsByAsset(assetID)
	if err != nil {
		return err
	}

	var lotFound bool
	var bought, sold float64
	for _, t := range transactions {
		switch {
		case t.IsBuy() && t.ID == lotID:
			lotFound = true
			bought = t.Quantity
		case t.IsSell() && t.LotID != nil && *t.LotID == lotID && t.ID != excludeSellID:
			sold += t.Quantity
		}
	}

	if !lotFound {
		return apperrors.ErrLotNotFound
	}
	if quantity > bought-sold {
		return apperrors.ErrInsufficientQuantity
	}

	return nil
}
