package repository

import (
	"database/sql"
	"fmt"

	"github.com/edineros/portfolio-tracker-backend/internal/apperrors"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// CategoryRepository provides data access methods for the category table.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository with the provided database connection.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategories retrieves all categories ordered by sort order, then name.
func (s *CategoryRepository) GetCategories() ([]model.Category, error) {
	query := `
		SELECT id, name, color, sort_order
		FROM category
		ORDER BY sort_order ASC, name ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category table: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}

	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category table results: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category table: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves one category by ID.
// Returns apperrors.ErrCategoryNotFound if it does not exist.
func (s *CategoryRepository) GetCategory(categoryID string) (model.Category, error) {
	var c model.Category

	err := s.db.QueryRow(
		`SELECT id, name, color, sort_order FROM category WHERE id = ?`,
		categoryID,
	).Scan(&c.ID, &c.Name, &c.Color, &c.SortOrder)
	if err == sql.ErrNoRows {
		return model.Category{}, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category table results: %w", err)
	}

	return c, nil
}

// CreateCategory inserts a new category.
func (s *CategoryRepository) CreateCategory(c model.Category) error {
	_, err := s.db.Exec(
		`INSERT INTO category (id, name, color, sort_order) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, c.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// UpdateCategory updates an existing category.
// Returns apperrors.ErrCategoryNotFound if no row was updated.
func (s *CategoryRepository) UpdateCategory(c model.Category) error {
	result, err := s.db.Exec(
		`UPDATE category SET name = ?, color = ?, sort_order = ? WHERE id = ?`,
		c.Name, c.Color, c.SortOrder, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category. Assets referencing it keep existing
// with their reference nulled by the foreign key's SET NULL action; the
// delete never cascades to assets.
// Returns apperrors.ErrCategoryNotFound if no row was deleted.
func (s *CategoryRepository) DeleteCategory(categoryID string) error {
	result, err := s.db.Exec(`DELETE FROM category WHERE id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
