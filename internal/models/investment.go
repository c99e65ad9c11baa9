package models

import "time"

// InvestmentType enumerates the instrument classes available locally.
type InvestmentType string

const (
	InvestmentTypeMoneyMarket    InvestmentType = "money-market"
	InvestmentTypeUnitTrust      InvestmentType = "unit-trust"
	InvestmentTypeGovernmentBond InvestmentType = "government-bond"
	InvestmentTypeStock          InvestmentType = "stock"
	InvestmentTypeSacco          InvestmentType = "sacco"
	InvestmentTypeREIT           InvestmentType = "reit"
	InvestmentTypeOther          InvestmentType = "other"
)

// Investment is a priced holding. Invested amount, current value, and
// gain are derived from units and prices, never stored.
type Investment struct {
	Base
	UserID        string         `gorm:"type:uuid;index;not null" json:"user_id"`
	Name          string         `gorm:"not null" json:"name"`
	Type          InvestmentType `gorm:"not null;index" json:"type"`
	Units         float64        `gorm:"not null" json:"units"`
	PurchasePrice float64        `gorm:"not null" json:"purchase_price"`
	CurrentPrice  float64        `gorm:"not null" json:"current_price"`
	PurchaseDate  time.Time      `gorm:"not null" json:"purchase_date"`
	LastUpdated   time.Time      `json:"last_updated"`
	Notes         string         `json:"notes,omitempty"`
}

// Invested returns the total purchase cost.
func (i *Investment) Invested() float64 {
	return i.Units * i.PurchasePrice
}

// CurrentValue returns the holding's value at the current price.
func (i *Investment) CurrentValue() float64 {
	return i.Units * i.CurrentPrice
}

// Gain returns current value minus invested amount.
func (i *Investment) Gain() float64 {
	return i.CurrentValue() - i.Invested()
}
