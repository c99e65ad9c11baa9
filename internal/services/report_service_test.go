package services

import (
	"testing"
	"time"

	"hazina/internal/models"
	"hazina/internal/month"
	"hazina/internal/testutil"
)

func TestNetWorth(t *testing.T) {
	t.Run("assets_minus_liabilities_plus_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestAsset(t, db, user.ID, models.AssetTypeAsset, 250000)
		testutil.CreateTestAsset(t, db, user.ID, models.AssetTypeAsset, 50000)
		testutil.CreateTestAsset(t, db, user.ID, models.AssetTypeLiability, 80000)
		testutil.CreateTestIncome(t, db, user.ID, 10000, time.Now())
		// Income from months ago still counts.
		testutil.CreateTestIncome(t, db, user.ID, 5000, time.Now().AddDate(0, -6, 0))

		netWorth, err := svc.NetWorth(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, netWorth, 235000, "net worth")
	})

	t.Run("deleted_income_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewReportService(db, incomes)

		user := testutil.CreateTestUser(t, db)
		trashed := testutil.CreateTestIncome(t, db, user.ID, 9000, time.Now())
		testutil.AssertNoError(t, incomes.DeleteIncome(user.ID, trashed.ID))

		netWorth, err := svc.NetWorth(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, netWorth, 0, "net worth")
	})

	t.Run("can_be_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestAsset(t, db, user.ID, models.AssetTypeLiability, 40000)

		netWorth, err := svc.NetWorth(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, netWorth, -40000, "net worth")
	})

	t.Run("ignores_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestAsset(t, db, other.ID, models.AssetTypeAsset, 999999)

		netWorth, err := svc.NetWorth(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, netWorth, 0, "net worth")
	})
}

func TestBudgetVsActual(t *testing.T) {
	t.Run("rolls_spending_into_pools", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		needs := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeNeeds, 40000)
		wants := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeWants, 20000)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSavings, 10000)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 15000, &needs.ID)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 5000, &needs.ID)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 8000, &wants.ID)

		result, err := svc.BudgetVsActual(user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, result.Needs.Budgeted, 40000, "needs budgeted")
		testutil.AssertFloat(t, result.Needs.Spent, 20000, "needs spent")
		testutil.AssertFloat(t, result.Wants.Spent, 8000, "wants spent")
		testutil.AssertFloat(t, result.Savings.Spent, 0, "savings spent")
		testutil.AssertFloat(t, result.TotalBudgeted, 70000, "total budgeted")
		testutil.AssertFloat(t, result.TotalSpent, 28000, "total spent")
		testutil.AssertFloat(t, result.Remaining, 42000, "remaining")
		testutil.AssertFloat(t, result.PercentageUsed, 40, "percentage used")
	})

	t.Run("only_current_month_expenses_count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		needs := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeNeeds, 40000)

		lastMonth := time.Now().AddDate(0, -1, 0)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 7000, &needs.ID, lastMonth)
		// Savings transactions are not spending.
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeSaving, 5000, &needs.ID)

		result, err := svc.BudgetVsActual(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, result.TotalSpent, 0, "total spent")
	})

	t.Run("dangling_category_reference_tolerated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeNeeds, 40000)
		gone := "0198a000-0000-7000-8000-000000000000"
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 3000, &gone)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 2000, nil)

		result, err := svc.BudgetVsActual(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, result.TotalSpent, 0, "total spent")
	})

	t.Run("zero_budget_yields_zero_percentage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)

		result, err := svc.BudgetVsActual(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, result.PercentageUsed, 0, "percentage used")
	})
}

func TestSavingsProgressReport(t *testing.T) {
	t.Run("aggregates_goals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestGoal(t, db, user.ID, 100000, 25000)
		testutil.CreateTestGoal(t, db, user.ID, 50000, 50000)

		progress, err := svc.SavingsProgress(user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, progress.TotalTarget, 150000, "total target")
		testutil.AssertFloat(t, progress.TotalCurrent, 75000, "total current")
		testutil.AssertFloat(t, progress.PercentageComplete, 50, "percentage complete")
		if len(progress.Goals) != 2 {
			t.Errorf("expected 2 goals, got %d", len(progress.Goals))
		}
	})

	t.Run("no_goals_yields_zeros", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)

		progress, err := svc.SavingsProgress(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, progress.PercentageComplete, 0, "percentage complete")
	})
}

func TestRecentTransactions(t *testing.T) {
	t.Run("newest_first_with_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.Local)
		for i := 0; i < 8; i++ {
			testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, float64(100*(i+1)), nil, base.AddDate(0, 0, i))
		}

		txs, err := svc.RecentTransactions(user.ID, 3)
		testutil.AssertNoError(t, err)

		if len(txs) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txs))
		}
		testutil.AssertFloat(t, txs[0].Amount, 800, "newest amount")
		testutil.AssertFloat(t, txs[2].Amount, 600, "third amount")
	})

	t.Run("defaults_to_five", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		for i := 0; i < 7; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 100, nil)
		}

		txs, err := svc.RecentTransactions(user.ID, 0)
		testutil.AssertNoError(t, err)
		if len(txs) != 5 {
			t.Errorf("expected default limit of 5, got %d", len(txs))
		}
	})
}

func TestNetWorthGrowth(t *testing.T) {
	t.Run("compares_last_two_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		now := time.Now()
		testutil.CreateTestSnapshot(t, db, user.ID, month.Back(now, 1), 200000)
		testutil.CreateTestSnapshot(t, db, user.ID, month.Current(), 230000)

		growth, err := svc.NetWorthGrowth(user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, growth.Growth, 30000, "growth")
		testutil.AssertFloat(t, growth.Percentage, 15, "growth percentage")
	})

	t.Run("zeros_when_history_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestSnapshot(t, db, user.ID, month.Current(), 230000)

		growth, err := svc.NetWorthGrowth(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, growth.Growth, 0, "growth")
		testutil.AssertFloat(t, growth.Percentage, 0, "growth percentage")
	})

	t.Run("guards_zero_previous_net_worth", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, NewIncomeService(db))

		user := testutil.CreateTestUser(t, db)
		now := time.Now()
		testutil.CreateTestSnapshot(t, db, user.ID, month.Back(now, 1), 0)
		testutil.CreateTestSnapshot(t, db, user.ID, month.Current(), 230000)

		growth, err := svc.NetWorthGrowth(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, growth.Growth, 230000, "growth")
		testutil.AssertFloat(t, growth.Percentage, 0, "guarded percentage")
	})
}
