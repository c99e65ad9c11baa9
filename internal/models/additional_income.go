package models

import (
	"time"

	"hazina/internal/month"
	"hazina/internal/uuid"

	"gorm.io/gorm"
)

// AdditionalIncome is incidental income outside the base salary
// (freelance, bonus, side hustle). It uses an explicit Deleted flag
// rather than GORM's soft delete so trashed entries stay queryable for
// the trash view and can be restored.
type AdditionalIncome struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Source      string    `gorm:"not null" json:"source"`
	Description string    `json:"description,omitempty"`
	Month       string    `gorm:"size:7;index;not null" json:"month"`
	Deleted     bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (a *AdditionalIncome) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps Month consistent with Date on every write path.
func (a *AdditionalIncome) BeforeSave(tx *gorm.DB) error {
	if !a.Date.IsZero() {
		a.Month = month.Key(a.Date)
	}
	return nil
}
