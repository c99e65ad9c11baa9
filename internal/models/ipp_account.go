package models

import "time"

// IPPAccount is the singleton Individual Pension Plan account per user.
// CurrentBalance is maintained additively on each contribution log
// (contributions + realized growth), never recomputed from history.
type IPPAccount struct {
	Base
	UserID              string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CurrentBalance      float64   `gorm:"not null;default:0" json:"current_balance"`
	MonthlyContribution float64   `gorm:"not null;default:0" json:"monthly_contribution"`
	TotalContributions  float64   `gorm:"not null;default:0" json:"total_contributions"`
	TaxReliefRate       float64   `gorm:"not null" json:"tax_relief_rate"`
	RealizedValue       float64   `gorm:"not null;default:0" json:"realized_value"`
	LastUpdated         time.Time `json:"last_updated"`
}
