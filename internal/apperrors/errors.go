package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCategoryNotFound indicates that a category with the given ID does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrLotNotFound indicates that a sell references a buy transaction that
	// does not exist or is not a buy.
	ErrLotNotFound = errors.New("lot not found")

	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientQuantity indicates that a sell transaction cannot be
	// created because the referenced lot does not hold enough remaining
	// quantity.
	ErrInsufficientQuantity = errors.New("insufficient remaining quantity in lot")

	// ErrLotReferenceImmutable indicates an attempt to change the lot
	// reference of an existing sell transaction.
	ErrLotReferenceImmutable = errors.New("sell lot reference cannot be changed")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Retrieval errors wrap lower-level failures for the HTTP layer.
var (
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveCategories   = errors.New("failed to retrieve categories")
	ErrFailedToRetrieveStats        = errors.New("failed to compute statistics")
)
