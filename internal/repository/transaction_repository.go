package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, asset_id, type, quantity, price, fee, date, notes, lot_id, created_at`

// GetTransactionsByAsset retrieves all transactions for one asset, sorted by
// date ascending (ties broken by creation time). Date-ascending order gives
// the lot resolver its conventional FIFO-consistent lot ordering.
func (s *TransactionRepository) GetTransactionsByAsset(assetID string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE asset_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves one transaction by ID.
// Returns apperrors.ErrTransactionNotFound if it does not exist.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	row := s.db.QueryRow(query, transactionID)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// CreateTransaction inserts a new transaction.
func (s *TransactionRepository) CreateTransaction(t model.Transaction) error {
	query := `
		INSERT INTO "transaction" (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		t.ID,
		t.AssetID,
		t.Type,
		t.Quantity,
		t.Price,
		t.Fee,
		t.Date.UTC().Format("2006-01-02"),
		t.Notes,
		t.LotID,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction updates the correctable fields of an existing
// transaction (quantity, price, fee, date, notes). The type, asset and lot
// reference are immutable after creation and deliberately not part of the
// statement.
// Returns apperrors.ErrTransactionNotFound if no row was updated.
func (s *TransactionRepository) UpdateTransaction(t model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET quantity = ?, price = ?, fee = ?, date = ?, notes = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query,
		t.Quantity,
		t.Price,
		t.Fee,
		t.Date.UTC().Format("2006-01-02"),
		t.Notes,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a transaction.
// Returns apperrors.ErrTransactionNotFound if no row was deleted.
func (s *TransactionRepository) DeleteTransaction(transactionID string) error {
	result, err := s.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// scanTransaction scans one transaction row from either *sql.Row or *sql.Rows.
func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	var notes, lotID sql.NullString
	var dateStr, createdAtStr string

	err := row.Scan(
		&t.ID,
		&t.AssetID,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&t.Fee,
		&dateStr,
		&notes,
		&lotID,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Notes = notes.String
	if lotID.Valid {
		t.LotID = &lotID.String
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}
