// Package budget implements the 50/30/15/5 budget generation engine:
// income-bracket classification, category allocation tables, and the
// deterministic category generator run at onboarding.
package budget

import "hazina/internal/models"

// Top-level allocation fractions per pool. They must sum to 1.0.
const (
	NeedsFraction   = 0.50
	WantsFraction   = 0.30
	SavingsFraction = 0.15
	GrowthFraction  = 0.05
)

// IPP settings: Kenyan pension tax relief and the default contribution
// rate suggested at onboarding.
const (
	IPPTaxReliefRate           = 0.30
	IPPDefaultContributionRate = 0.05
)

// Bracket is one of four income tiers used to select allocation
// percentages.
type Bracket string

const (
	BracketLow    Bracket = "low"
	BracketMiddle Bracket = "middle"
	BracketUpper  Bracket = "upper"
	BracketHigh   Bracket = "high"
)

// Income bracket thresholds in KES, inclusive upper bounds.
const (
	lowIncomeMax    = 50000
	middleIncomeMax = 100000
	upperIncomeMax  = 200000
)

// BracketFor classifies a monthly income into its bracket using strict
// ordered threshold checks.
func BracketFor(monthlyIncome float64) Bracket {
	switch {
	case monthlyIncome <= lowIncomeMax:
		return BracketLow
	case monthlyIncome <= middleIncomeMax:
		return BracketMiddle
	case monthlyIncome <= upperIncomeMax:
		return BracketUpper
	default:
		return BracketHigh
	}
}

// shares holds a category's share of its pool for each bracket.
type shares struct {
	low, middle, upper, high float64
}

// forBracket returns the share for the given bracket.
func (s shares) forBracket(b Bracket) float64 {
	switch b {
	case BracketLow:
		return s.low
	case BracketMiddle:
		return s.middle
	case BracketUpper:
		return s.upper
	default:
		return s.high
	}
}

// Default category names per pool. The dependent-conditional lists are
// appended only when the profile has dependents.
var (
	needsCategories = []string{
		"Rent/Mortgage",
		"Food & Groceries",
		"Transport",
		"Utilities (Water, Electricity)",
		"Insurance",
	}
	needsWithDependents = []string{
		"School Fees",
		"Medical & Healthcare",
	}
	wantsCategories = []string{
		"Entertainment",
		"Dining Out",
		"Personal Care",
		"Hobbies & Recreation",
	}
	savingsCategories = []string{
		"Emergency Fund",
	}
	savingsWithDependents = []string{
		"Children's Education Fund",
	}
	growthCategories = []string{
		"Pension (IPP)",
	}
)

// Per-category allocation suggestions by income bracket, keyed by pool
// then category name. Growth has no table: its single category takes the
// whole pool. Note the shares of a pool's base list deliberately do not
// sum to 1.0 for every bracket; remainder correction closes the gap.
var allocationSuggestions = map[models.CategoryType]map[string]shares{
	models.CategoryTypeNeeds: {
		"Rent/Mortgage":                  {low: 0.35, middle: 0.30, upper: 0.25, high: 0.20},
		"Food & Groceries":               {low: 0.25, middle: 0.20, upper: 0.15, high: 0.12},
		"Transport":                      {low: 0.15, middle: 0.15, upper: 0.12, high: 0.10},
		"Utilities (Water, Electricity)": {low: 0.10, middle: 0.10, upper: 0.08, high: 0.06},
		"Insurance":                      {low: 0.05, middle: 0.08, upper: 0.10, high: 0.12},
		"School Fees":                    {low: 0.10, middle: 0.15, upper: 0.20, high: 0.25},
		"Medical & Healthcare":           {low: 0.05, middle: 0.07, upper: 0.10, high: 0.15},
	},
	models.CategoryTypeWants: {
		"Entertainment":        {low: 0.30, middle: 0.30, upper: 0.25, high: 0.25},
		"Dining Out":           {low: 0.30, middle: 0.35, upper: 0.35, high: 0.35},
		"Personal Care":        {low: 0.20, middle: 0.20, upper: 0.20, high: 0.20},
		"Hobbies & Recreation": {low: 0.20, middle: 0.15, upper: 0.20, high: 0.20},
	},
	models.CategoryTypeSavings: {
		"Emergency Fund":            {low: 0.60, middle: 0.55, upper: 0.50, high: 0.50},
		"Children's Education Fund": {low: 0.40, middle: 0.45, upper: 0.50, high: 0.50},
	},
}
