package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// categoryService handles budget category CRUD.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory adds a user-defined category to an existing budget.
func (s *categoryService) CreateCategory(userID, name string, amount float64, ctype models.CategoryType) (*models.BudgetCategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.BudgetCategory{
		UserID:         userID,
		Name:           name,
		BudgetedAmount: amount,
		Type:           ctype,
		IsDefault:      false,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories returns all of the user's categories in creation order,
// which preserves the generator's pool ordering for seeded budgets.
func (s *categoryService) GetCategories(userID string) ([]models.BudgetCategory, error) {
	var categories []models.BudgetCategory
	if err := s.db.Where("user_id = ?", userID).Order("created_at, id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoriesByType returns the user's categories for one pool.
func (s *categoryService) GetCategoriesByType(userID string, ctype models.CategoryType) ([]models.BudgetCategory, error) {
	var categories []models.BudgetCategory
	if err := s.db.Where("user_id = ? AND type = ?", userID, ctype).Order("created_at, id").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID returns a category if it belongs to the user.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category's name and/or budgeted amount.
func (s *categoryService) UpdateCategory(userID, categoryID, name string, amount *float64) (*models.BudgetCategory, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		updates["budgeted_amount"] = *amount
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory removes a category. Transactions referencing it keep
// their category_id; the reference is weak and aggregation tolerates
// dangling IDs.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
