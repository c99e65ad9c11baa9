package models

import "time"

// AssetType distinguishes assets from liabilities on the shared ledger.
type AssetType string

const (
	AssetTypeAsset     AssetType = "asset"
	AssetTypeLiability AssetType = "liability"
)

// Asset is a dual-purpose asset/liability record. Amount is stored as a
// positive magnitude; the sign is applied during net worth aggregation.
type Asset struct {
	Base
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Type        AssetType `gorm:"not null;index" json:"type"`
	Category    string    `json:"category"` // free-form: cash, pension, savings, loan, credit, ...
	LastUpdated time.Time `json:"last_updated"`
}
