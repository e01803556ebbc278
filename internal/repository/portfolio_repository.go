package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios ordered by creation time.
// Returns an empty slice if no portfolios exist.
func (s *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	query := `
		SELECT id, name, currency, hidden, created_at, updated_at
		FROM portfolio
		ORDER BY created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves one portfolio by ID.
// Returns apperrors.ErrPortfolioNotFound if it does not exist.
func (s *PortfolioRepository) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, name, currency, hidden, created_at, updated_at
		FROM portfolio
		WHERE id = ?
	`

	row := s.db.QueryRow(query, portfolioID)
	p, err := scanPortfolio(row)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}

// CreatePortfolio inserts a new portfolio.
func (s *PortfolioRepository) CreatePortfolio(p model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, name, currency, hidden, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		p.ID,
		p.Name,
		p.Currency,
		p.Hidden,
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// UpdatePortfolio updates name, currency and hidden flag of an existing portfolio.
// Returns apperrors.ErrPortfolioNotFound if no row was updated.
func (s *PortfolioRepository) UpdatePortfolio(p model.Portfolio) error {
	query := `
		UPDATE portfolio
		SET name = ?, currency = ?, hidden = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query,
		p.Name,
		p.Currency,
		p.Hidden,
		p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// DeletePortfolio removes a portfolio. Its assets (and their transactions)
// are removed by the cascading foreign keys.
// Returns apperrors.ErrPortfolioNotFound if no row was deleted.
func (s *PortfolioRepository) DeletePortfolio(portfolioID string) error {
	result, err := s.db.Exec(`DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// scanPortfolio scans one portfolio row from either *sql.Row or *sql.Rows.
func scanPortfolio(row interface{ Scan(...any) error }) (model.Portfolio, error) {
	var p model.Portfolio
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Currency,
		&p.Hidden,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, err
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to scan portfolio table results: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse date: %w", err)
	}
	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}
