package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// incomeService handles additional income entries. The "exclude deleted
// unless requested" rule lives here, in the query methods, so callers
// never re-filter ad hoc.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records an incidental income entry. Month is derived from
// the date in the model's save hook.
func (s *incomeService) CreateIncome(userID string, date time.Time, amount float64, source, description string) (*models.AdditionalIncome, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "source is required")
	}

	income := &models.AdditionalIncome{
		UserID:      userID,
		Date:        date,
		Amount:      amount,
		Source:      source,
		Description: description,
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// GetIncomeByMonth returns the month's non-deleted entries.
func (s *incomeService) GetIncomeByMonth(userID, monthKey string) ([]models.AdditionalIncome, error) {
	var entries []models.AdditionalIncome
	if err := s.db.Where("user_id = ? AND month = ? AND deleted = ?", userID, monthKey, false).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// GetAllIncome returns every entry; deleted ones only when includeDeleted
// is set (the trash view).
func (s *incomeService) GetAllIncome(userID string, includeDeleted bool) ([]models.AdditionalIncome, error) {
	query := s.db.Where("user_id = ?", userID)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var entries []models.AdditionalIncome
	if err := query.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// DeleteIncome soft-deletes an entry: it disappears from all aggregation
// but stays recoverable from the trash view.
func (s *incomeService) DeleteIncome(userID, incomeID string) error {
	result := s.db.Model(&models.AdditionalIncome{}).
		Where("id = ? AND user_id = ?", incomeID, userID).
		Update("deleted", true)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrIncomeNotFound
	}
	return nil
}

// RestoreIncome clears the soft-delete flag.
func (s *incomeService) RestoreIncome(userID, incomeID string) (*models.AdditionalIncome, error) {
	result := s.db.Model(&models.AdditionalIncome{}).
		Where("id = ? AND user_id = ?", incomeID, userID).
		Update("deleted", false)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrIncomeNotFound
	}

	var income models.AdditionalIncome
	if err := s.db.Where("id = ?", incomeID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}
