package service

import (
	"github.com/google/uuid"

	"github.com/edineros/portfolio-tracker-backend/internal/api/request"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/repository"
)

// CategoryService handles category-related business logic.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService with the provided repository.
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// GetCategories retrieves all categories in sort order.
func (s *CategoryService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.GetCategories()
}

// GetCategory retrieves one category by ID.
func (s *CategoryService) GetCategory(categoryID string) (model.Category, error) {
	return s.categoryRepo.GetCategory(categoryID)
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(req request.CreateCategoryRequest) (model.Category, error) {
	category := model.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	}

	if err := s.categoryRepo.CreateCategory(category); err != nil {
		return model.Category{}, err
	}

	return category, nil
}

// UpdateCategory applies the non-nil fields of the request to an existing
// category.
func (s *CategoryService) UpdateCategory(categoryID string, req request.UpdateCategoryRequest) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(categoryID)
	if err != nil {
		return model.Category{}, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.UpdateCategory(category); err != nil {
		return model.Category{}, err
	}

	return category, nil
}

// DeleteCategory removes a category. Assets that referenced it keep
// existing with a nulled category reference; the delete never cascades.
func (s *CategoryService) DeleteCategory(categoryID string) error {
	return s.categoryRepo.DeleteCategory(categoryID)
}
