package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
)

// MakeID generates a unique ID for test entities.
func MakeID() string {
	return uuid.New().String()
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Retirement").
//	    WithCurrency("USD").
//	    Build(t, db)
type PortfolioBuilder struct {
	portfolio model.Portfolio
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	now := time.Now().UTC()
	return &PortfolioBuilder{portfolio: model.Portfolio{
		ID:        MakeID(),
		Name:      "Test Portfolio",
		Currency:  "EUR",
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.portfolio.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.portfolio.Name = name
	return b
}

// WithCurrency sets the base currency.
func (b *PortfolioBuilder) WithCurrency(currency string) *PortfolioBuilder {
	b.portfolio.Currency = currency
	return b
}

// Hidden marks the portfolio as hidden.
func (b *PortfolioBuilder) Hidden() *PortfolioBuilder {
	b.portfolio.Hidden = true
	return b
}

// Build persists the portfolio and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	repo := repository.NewPortfolioRepository(db)
	if err := repo.CreatePortfolio(b.portfolio); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return b.portfolio
}

// CategoryBuilder provides a fluent interface for creating test categories.
type CategoryBuilder struct {
	category model.Category
}

// NewCategory creates a CategoryBuilder with sensible defaults.
func NewCategory() *CategoryBuilder {
	return &CategoryBuilder{category: model.Category{
		ID:    MakeID(),
		Name:  "Test Category",
		Color: "#336699",
	}}
}

// WithName sets a custom name.
func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.category.Name = name
	return b
}

// WithSortOrder sets the sort order.
func (b *CategoryBuilder) WithSortOrder(order int) *CategoryBuilder {
	b.category.SortOrder = order
	return b
}

// Build persists the category and returns it.
func (b *CategoryBuilder) Build(t *testing.T, db *sql.DB) model.Category {
	t.Helper()

	repo := repository.NewCategoryRepository(db)
	if err := repo.CreateCategory(b.category); err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return b.category
}

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	asset := testutil.NewAsset(portfolio.ID).
//	    WithSymbol("AAPL").
//	    WithType(model.AssetTypeStock).
//	    WithCurrency("USD").
//	    Build(t, db)
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates an AssetBuilder owned by the given portfolio.
func NewAsset(portfolioID string) *AssetBuilder {
	return &AssetBuilder{asset: model.Asset{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Symbol:      "TEST",
		Name:        "Test Asset",
		Type:        model.AssetTypeStock,
		Currency:    "EUR",
		CreatedAt:   time.Now().UTC(),
	}}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.asset.ID = id
	return b
}

// WithSymbol sets the ticker symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.asset.Symbol = symbol
	return b
}

// WithType sets the asset type.
func (b *AssetBuilder) WithType(assetType model.AssetType) *AssetBuilder {
	b.asset.Type = assetType
	return b
}

// WithCurrency sets the asset's native currency.
func (b *AssetBuilder) WithCurrency(currency string) *AssetBuilder {
	b.asset.Currency = currency
	return b
}

// WithCategory links the asset to a category.
func (b *AssetBuilder) WithCategory(categoryID string) *AssetBuilder {
	b.asset.CategoryID = &categoryID
	return b
}

// Build persists the asset and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	repo := repository.NewAssetRepository(db)
	if err := repo.CreateAsset(b.asset); err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}
	return b.asset
}

// TransactionBuilder provides a fluent interface for creating test
// transactions.
//
// Example usage:
//
//	buy := testutil.NewTransaction(asset.ID).
//	    Buy(10, 100).
//	    OnDate("2024-01-02").
//	    Build(t, db)
//	testutil.NewTransaction(asset.ID).
//	    Sell(4, 130).
//	    FromLot(buy.ID).
//	    Build(t, db)
type TransactionBuilder struct {
	transaction model.Transaction
}

// NewTransaction creates a TransactionBuilder for the given asset,
// defaulting to a buy of 1 at price 100.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{transaction: model.Transaction{
		ID:        MakeID(),
		AssetID:   assetID,
		Type:      model.TransactionBuy,
		Quantity:  1,
		Price:     100,
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.transaction.ID = id
	return b
}

// Buy makes the transaction a buy with the given quantity and price.
func (b *TransactionBuilder) Buy(quantity, price float64) *TransactionBuilder {
	b.transaction.Type = model.TransactionBuy
	b.transaction.Quantity = quantity
	b.transaction.Price = price
	return b
}

// Sell makes the transaction a sell with the given quantity and price.
func (b *TransactionBuilder) Sell(quantity, price float64) *TransactionBuilder {
	b.transaction.Type = model.TransactionSell
	b.transaction.Quantity = quantity
	b.transaction.Price = price
	return b
}

// FromLot points a sell at the buy lot it consumes.
func (b *TransactionBuilder) FromLot(lotID string) *TransactionBuilder {
	b.transaction.LotID = &lotID
	return b
}

// WithFee sets the transaction fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.transaction.Fee = fee
	return b
}

// OnDate sets the trade date from a YYYY-MM-DD string.
func (b *TransactionBuilder) OnDate(date string) *TransactionBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("invalid test date: " + date)
	}
	b.transaction.Date = parsed
	return b
}

// Build persists the transaction and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	repo := repository.NewTransactionRepository(db)
	if err := repo.CreateTransaction(b.transaction); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return b.transaction
}
