package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// investmentService handles investment holdings.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// AddInvestment records a new priced holding.
func (s *investmentService) AddInvestment(
	userID, name string,
	itype models.InvestmentType,
	units, purchasePrice, currentPrice float64,
	purchaseDate time.Time,
	notes string,
) (*models.Investment, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name is required")
	}
	if units <= 0 || purchasePrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "units must be positive and prices non-negative")
	}
	if currentPrice == 0 {
		// New holdings default to their purchase price until repriced.
		currentPrice = purchasePrice
	}

	investment := &models.Investment{
		UserID:        userID,
		Name:          name,
		Type:          itype,
		Units:         units,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		PurchaseDate:  purchaseDate,
		LastUpdated:   time.Now(),
		Notes:         notes,
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// GetInvestments returns all of the user's holdings.
func (s *investmentService) GetInvestments(userID string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}

// GetInvestmentByID returns a holding if it belongs to the user.
func (s *investmentService) GetInvestmentByID(userID, investmentID string) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdatePrice reprices a holding; value and gain stay derived.
func (s *investmentService) UpdatePrice(userID, investmentID string, currentPrice float64) (*models.Investment, error) {
	if currentPrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "price cannot be negative")
	}

	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(investment).Updates(map[string]interface{}{
		"current_price": currentPrice,
		"last_updated":  time.Now(),
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// DeleteInvestment removes a holding.
func (s *investmentService) DeleteInvestment(userID, investmentID string) error {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetPortfolio aggregates all holdings into invested/value/gain totals,
// with the gain percentage zero-guarded like every other ratio.
func (s *investmentService) GetPortfolio(userID string) (*PortfolioSummary, error) {
	investments, err := s.GetInvestments(userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		CountByType: make(map[models.InvestmentType]int),
		Holdings:    investments,
	}
	for i := range investments {
		inv := &investments[i]
		summary.TotalInvested += inv.Invested()
		summary.TotalValue += inv.CurrentValue()
		summary.CountByType[inv.Type]++
	}
	summary.TotalGain = summary.TotalValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.GainPercentage = summary.TotalGain / summary.TotalInvested * 100
	}

	return summary, nil
}
