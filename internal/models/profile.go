package models

// Profile is the financial profile seeding budget generation: one per
// user, created at onboarding, edited via settings, never deleted by
// normal flows.
type Profile struct {
	Base
	UserID        string  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name          string  `gorm:"not null" json:"name"`
	MonthlyIncome float64 `gorm:"not null" json:"monthly_income"`
	Dependents    int     `gorm:"not null;default:0" json:"dependents"`
}
