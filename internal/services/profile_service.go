package services

import (
	"errors"

	"gorm.io/gorm"

	"hazina/internal/budget"
	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// profileService handles the financial profile and onboarding.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CreateProfile runs onboarding: it creates the profile, seeds the
// generated budget categories, and opens the default IPP account, all in
// one transaction so a half-onboarded state cannot persist.
func (s *profileService) CreateProfile(userID, name string, monthlyIncome float64, dependents int) (*models.Profile, error) {
	if monthlyIncome <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly income must be positive")
	}
	if dependents < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dependents cannot be negative")
	}

	var existing int64
	s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&existing)
	if existing > 0 {
		return nil, apperrors.ErrProfileExists
	}

	profile := &models.Profile{
		UserID:        userID,
		Name:          name,
		MonthlyIncome: monthlyIncome,
		Dependents:    dependents,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		categories := budget.Generate(profile)
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		ipp := &models.IPPAccount{
			UserID:              userID,
			MonthlyContribution: monthlyIncome * budget.IPPDefaultContributionRate,
			TaxReliefRate:       budget.IPPTaxReliefRate,
		}
		return tx.Create(ipp).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return profile, nil
}

// GetProfile returns the user's profile or ErrProfileNotFound.
func (s *profileService) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile updates the profile's mutable fields.
func (s *profileService) UpdateProfile(userID, name string, monthlyIncome *float64, dependents *int) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if monthlyIncome != nil {
		if *monthlyIncome <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly income must be positive")
		}
		updates["monthly_income"] = *monthlyIncome
	}
	if dependents != nil {
		if *dependents < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "dependents cannot be negative")
		}
		updates["dependents"] = *dependents
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return profile, nil
}

// RegenerateCategories re-runs the generator against the current profile
// and swaps out the default categories. Categories the user created by
// hand keep their IDs and amounts.
func (s *profileService) RegenerateCategories(userID string) ([]models.BudgetCategory, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	categories := budget.Generate(profile)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND is_default = ?", userID, true).
			Delete(&models.BudgetCategory{}).Error; err != nil {
			return err
		}
		return tx.Create(&categories).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return categories, nil
}
