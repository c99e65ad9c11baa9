package models

// CategoryType is the top-level budget pool a category belongs to.
type CategoryType string

const (
	CategoryTypeNeeds   CategoryType = "needs"
	CategoryTypeWants   CategoryType = "wants"
	CategoryTypeSavings CategoryType = "savings"
	CategoryTypeGrowth  CategoryType = "growth"
)

// BudgetCategory is a single line of the generated budget. Categories are
// seeded in bulk by the generator (IsDefault=true) and freely added,
// edited, or deleted by the user afterward. No nesting.
type BudgetCategory struct {
	Base
	UserID         string       `gorm:"type:uuid;index;not null" json:"user_id"`
	Name           string       `gorm:"not null" json:"name"`
	BudgetedAmount float64      `gorm:"not null" json:"budgeted_amount"`
	Type           CategoryType `gorm:"not null;index" json:"type"`
	IsDefault      bool         `gorm:"default:false" json:"is_default"`
}
