package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hazina/internal/budget"
	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// ippService handles the Individual Pension Plan account.
type ippService struct {
	db *gorm.DB
}

// NewIPPService creates a new IPPServicer.
func NewIPPService(db *gorm.DB) IPPServicer {
	return &ippService{db: db}
}

// GetAccount returns the user's IPP account, or (nil, nil) when none is
// configured. Callers must treat the nil account as "not configured",
// not as a failure.
func (s *ippService) GetAccount(userID string) (*models.IPPAccount, error) {
	var account models.IPPAccount
	if err := s.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// CreateAccount opens the singleton IPP account with the standard tax
// relief rate.
func (s *ippService) CreateAccount(userID string, monthlyContribution float64) (*models.IPPAccount, error) {
	existing, err := s.GetAccount(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	account := &models.IPPAccount{
		UserID:              userID,
		MonthlyContribution: monthlyContribution,
		TaxReliefRate:       budget.IPPTaxReliefRate,
		LastUpdated:         time.Now(),
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// UpdateMonthlyContribution changes the planned monthly contribution.
func (s *ippService) UpdateMonthlyContribution(userID string, monthlyContribution float64) (*models.IPPAccount, error) {
	account, err := s.GetAccount(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrIPPNotConfigured
	}
	if monthlyContribution < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly contribution cannot be negative")
	}

	if err := s.db.Model(account).Updates(map[string]interface{}{
		"monthly_contribution": monthlyContribution,
		"last_updated":         time.Now(),
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// LogContribution applies a contribution and optional realized growth
// additively: balance += amount + growth, totals += amount,
// realized += growth. The balance is never recomputed from history;
// the invariant balance = contributions + realized growth is maintained
// one increment at a time.
func (s *ippService) LogContribution(userID string, amount, realizedGrowth float64) (*models.IPPAccount, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be positive")
	}
	if realizedGrowth < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "realized growth cannot be negative")
	}

	account, err := s.GetAccount(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrIPPNotConfigured
	}

	if err := s.db.Model(account).Updates(map[string]interface{}{
		"current_balance":     gorm.Expr("current_balance + ?", amount+realizedGrowth),
		"total_contributions": gorm.Expr("total_contributions + ?", amount),
		"realized_value":      gorm.Expr("realized_value + ?", realizedGrowth),
		"last_updated":        time.Now(),
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetAccount(userID)
}

// GetSummary decorates the account with derived tax relief figures, or
// returns (nil, nil) when no account is configured.
func (s *ippService) GetSummary(userID string) (*IPPSummary, error) {
	account, err := s.GetAccount(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}

	taxRelief := account.MonthlyContribution * account.TaxReliefRate
	return &IPPSummary{
		IPPAccount:    *account,
		TaxRelief:     taxRelief,
		EffectiveCost: account.MonthlyContribution - taxRelief,
	}, nil
}
