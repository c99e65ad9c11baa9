package models

import (
	"time"

	"hazina/internal/month"

	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeExpense   TransactionType = "expense"
	TransactionTypeSaving    TransactionType = "saving"
	TransactionTypeIPP       TransactionType = "ipp"
	TransactionTypeAsset     TransactionType = "asset"
	TransactionTypeLiability TransactionType = "liability"
)

// Transaction is a dated money movement. CategoryID is a weak reference:
// it may dangle after the category is deleted, and aggregation tolerates
// that. Month is a denormalized YYYY-MM copy of Date for range queries.
type Transaction struct {
	Base
	UserID     string          `gorm:"type:uuid;index;not null" json:"user_id"`
	Date       time.Time       `gorm:"not null" json:"date"`
	CategoryID *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Amount     float64         `gorm:"not null" json:"amount"`
	Type       TransactionType `gorm:"not null" json:"type"`
	Notes      string          `json:"notes,omitempty"`
	Month      string          `gorm:"size:7;index;not null" json:"month"`
}

// BeforeSave derives Month from Date so the month == format(date)
// invariant holds on every write path, not just the primary one.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	if !t.Date.IsZero() {
		t.Month = month.Key(t.Date)
	}
	return nil
}
