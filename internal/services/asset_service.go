package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// assetService handles the asset/liability ledger.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset records an asset or liability position.
func (s *assetService) CreateAsset(userID, name string, amount float64, atype models.AssetType, category string) (*models.Asset, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive magnitude")
	}

	asset := &models.Asset{
		UserID:      userID,
		Name:        name,
		Amount:      amount,
		Type:        atype,
		Category:    category,
		LastUpdated: time.Now(),
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetAssets returns the user's full ledger, assets and liabilities.
func (s *assetService) GetAssets(userID string) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// GetAssetsByType returns only assets or only liabilities.
func (s *assetService) GetAssetsByType(userID string, atype models.AssetType) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ? AND type = ?", userID, atype).Order("created_at").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// UpdateAsset updates an asset's editable fields and bumps LastUpdated.
func (s *assetService) UpdateAsset(userID, assetID, name string, amount *float64, category string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{"last_updated": time.Now()}
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		if *amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a positive magnitude")
		}
		updates["amount"] = *amount
	}
	if category != "" {
		updates["category"] = category
	}

	if err := s.db.Model(&asset).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// DeleteAsset removes a position from the ledger.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	result := s.db.Where("id = ? AND user_id = ?", assetID, userID).Delete(&models.Asset{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
