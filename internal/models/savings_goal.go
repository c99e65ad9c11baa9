package models

// SavingsGoal tracks progress toward a named target. CurrentAmount grows
// by contributions; overshooting TargetAmount is allowed.
type SavingsGoal struct {
	Base
	UserID              string  `gorm:"type:uuid;index;not null" json:"user_id"`
	Name                string  `gorm:"not null" json:"name"`
	TargetAmount        float64 `gorm:"not null" json:"target_amount"`
	CurrentAmount       float64 `gorm:"not null;default:0" json:"current_amount"`
	MonthlyContribution float64 `gorm:"not null;default:0" json:"monthly_contribution"`
}
