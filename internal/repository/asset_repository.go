package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, portfolio_id, symbol, name, type, currency, category_id, tags, created_at`

// GetAssets retrieves assets, optionally filtered by portfolio. An empty
// portfolioID returns assets across all portfolios (the "All Portfolios"
// union). Results are ordered by creation time.
func (s *AssetRepository) GetAssets(portfolioID string) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset`
	var args []any

	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves one asset by ID.
// Returns apperrors.ErrAssetNotFound if it does not exist.
func (s *AssetRepository) GetAsset(assetID string) (model.Asset, error) {
	row := s.db.QueryRow(`SELECT `+assetColumns+` FROM asset WHERE id = ?`, assetID)

	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}

	return a, nil
}

// CreateAsset inserts a new asset.
func (s *AssetRepository) CreateAsset(a model.Asset) error {
	query := `
		INSERT INTO asset (` + assetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		a.ID,
		a.PortfolioID,
		a.Symbol,
		a.Name,
		string(a.Type),
		a.Currency,
		a.CategoryID,
		a.Tags,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// UpdateAsset updates the mutable fields of an existing asset.
// Returns apperrors.ErrAssetNotFound if no row was updated.
func (s *AssetRepository) UpdateAsset(a model.Asset) error {
	query := `
		UPDATE asset
		SET symbol = ?, name = ?, type = ?, currency = ?, category_id = ?, tags = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query,
		a.Symbol,
		a.Name,
		string(a.Type),
		a.Currency,
		a.CategoryID,
		a.Tags,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// DeleteAsset removes an asset. Its transactions are removed by the
// cascading foreign key.
// Returns apperrors.ErrAssetNotFound if no row was deleted.
func (s *AssetRepository) DeleteAsset(assetID string) error {
	result, err := s.db.Exec(`DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// scanAsset scans one asset row from either *sql.Row or *sql.Rows.
func scanAsset(row interface{ Scan(...any) error }) (model.Asset, error) {
	var a model.Asset
	var assetType string
	var name, tags, categoryID sql.NullString
	var createdAtStr string

	err := row.Scan(
		&a.ID,
		&a.PortfolioID,
		&a.Symbol,
		&name,
		&assetType,
		&a.Currency,
		&categoryID,
		&tags,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Asset{}, err
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	a.Type = model.AssetType(assetType)
	a.Name = name.String
	a.Tags = tags.String
	if categoryID.Valid {
		a.CategoryID = &categoryID.String
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return a, nil
}
