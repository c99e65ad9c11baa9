package models

import (
	"time"

	"hazina/internal/uuid"

	"gorm.io/gorm"
)

// MonthlySnapshot is a frozen one-per-month record of aggregate metrics
// used for trend charts. The (user_id, month) pair is the identity:
// re-ensuring a month overwrites rather than duplicates. No Base embed,
// no soft deletes; past months are never updated once the month ends.
type MonthlySnapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;uniqueIndex:idx_snapshot_user_month" json:"user_id"`
	Month            string    `gorm:"size:7;not null;uniqueIndex:idx_snapshot_user_month" json:"month"`
	Income           float64   `gorm:"not null" json:"income"`
	TotalExpenses    float64   `gorm:"not null" json:"total_expenses"`
	TotalSavings     float64   `gorm:"not null" json:"total_savings"`
	IPPContributions float64   `gorm:"not null" json:"ipp_contributions"`
	NetWorth         float64   `gorm:"not null" json:"net_worth"`
	CreatedAt        time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (m *MonthlySnapshot) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New()
	}
	return nil
}
