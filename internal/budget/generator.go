package budget

import (
	"math"

	"hazina/internal/models"
	"hazina/internal/uuid"
)

// Generate produces the default budget categories for a profile.
// Deterministic and pure apart from ID generation: no I/O, no clock.
//
// Each pool's categories get round(pool × share[bracket]); after
// rounding, the signed drift between the pool target and the rounded sum
// is added wholly to the pool's first category. The first category
// absorbs all rounding noise so that the pool sums exactly to
// income × fraction. This is a deliberate tie-break; do not redistribute
// it proportionally, as golden amounts depend on it.
//
// Income is not validated here. A zero or negative income produces zero
// or negative budgets; callers gate invalid input upstream.
func Generate(profile *models.Profile) []models.BudgetCategory {
	bracket := BracketFor(profile.MonthlyIncome)
	income := profile.MonthlyIncome

	pools := []struct {
		ctype  models.CategoryType
		target float64
		names  []string
	}{
		{models.CategoryTypeNeeds, income * NeedsFraction, withDependents(needsCategories, needsWithDependents, profile.Dependents)},
		{models.CategoryTypeWants, income * WantsFraction, wantsCategories},
		{models.CategoryTypeSavings, income * SavingsFraction, withDependents(savingsCategories, savingsWithDependents, profile.Dependents)},
		{models.CategoryTypeGrowth, income * GrowthFraction, growthCategories},
	}

	var categories []models.BudgetCategory
	for _, pool := range pools {
		categories = append(categories, generatePool(profile.UserID, pool.ctype, pool.target, pool.names, bracket)...)
	}
	return categories
}

// withDependents appends the dependent-conditional names when the
// household has dependents. With none, those categories are absent
// entirely, not zero-budgeted.
func withDependents(base, conditional []string, dependents int) []string {
	if dependents <= 0 {
		return base
	}
	names := make([]string, 0, len(base)+len(conditional))
	names = append(names, base...)
	names = append(names, conditional...)
	return names
}

// generatePool allocates one pool's target across its categories.
func generatePool(userID string, ctype models.CategoryType, target float64, names []string, bracket Bracket) []models.BudgetCategory {
	suggestions := allocationSuggestions[ctype]

	categories := make([]models.BudgetCategory, 0, len(names))
	var allocated float64
	for _, name := range names {
		var amount float64
		if share, ok := suggestions[name]; ok {
			amount = math.Round(target * share.forBracket(bracket))
		} else {
			// No suggestion table for this pool (growth): the single
			// category takes the whole pool.
			amount = math.Round(target)
		}
		allocated += amount

		categories = append(categories, models.BudgetCategory{
			Base:           models.Base{ID: uuid.New()},
			UserID:         userID,
			Name:           name,
			BudgetedAmount: amount,
			Type:           ctype,
			IsDefault:      true,
		})
	}

	// Remainder correction: close the rounding gap on the first category.
	if len(categories) > 0 && suggestions != nil && allocated != target {
		categories[0].BudgetedAmount += target - allocated
	}

	return categories
}
