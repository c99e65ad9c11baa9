package services

import (
	"testing"
	"time"

	"hazina/internal/models"
	"hazina/internal/month"
	"hazina/internal/testutil"
)

func TestEnsure(t *testing.T) {
	t.Run("fails_without_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.Ensure(user.ID, month.Current())
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})

	t.Run("rejects_malformed_month_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		for _, key := range []string{"2026-1", "2026/01", "2026-13", "jan-2026"} {
			_, err := svc.Ensure(user.ID, key)
			testutil.AssertAppError(t, err, "INVALID_MONTH_KEY")
		}
	})

	t.Run("computes_month_figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		now := time.Now()
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 12000, nil, now)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 3000, nil, now)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeSaving, 8000, nil, now)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeIPP, 4250, nil, now)
		testutil.CreateTestIncome(t, db, user.ID, 5000, now)
		testutil.CreateTestAsset(t, db, user.ID, models.AssetTypeAsset, 100000)
		testutil.CreateTestAsset(t, db, user.ID, models.AssetTypeLiability, 30000)

		snap, err := svc.Ensure(user.ID, month.Current())
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, snap.Income, 90000, "income")
		testutil.AssertFloat(t, snap.TotalExpenses, 15000, "total expenses")
		testutil.AssertFloat(t, snap.TotalSavings, 8000, "total savings")
		testutil.AssertFloat(t, snap.IPPContributions, 4250, "ipp contributions")
		// 100000 - 30000 + 5000 additional income
		testutil.AssertFloat(t, snap.NetWorth, 75000, "net worth")
	})

	t.Run("is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		first, err := svc.Ensure(user.ID, month.Current())
		testutil.AssertNoError(t, err)

		// A new transaction after the first Ensure must not change the
		// stored snapshot on a second Ensure.
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 9999, nil)

		second, err := svc.Ensure(user.ID, month.Current())
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected same snapshot row, got %s and %s", first.ID, second.ID)
		}
		testutil.AssertFloat(t, second.TotalExpenses, first.TotalExpenses, "total expenses")

		var count int64
		db.Model(&models.MonthlySnapshot{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 snapshot row, got %d", count)
		}
	})

	t.Run("excludes_deleted_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		kept := testutil.CreateTestIncome(t, db, user.ID, 5000, time.Now())
		trashed := testutil.CreateTestIncome(t, db, user.ID, 7000, time.Now())
		testutil.AssertNoError(t, incomes.DeleteIncome(user.ID, trashed.ID))
		_ = kept

		snap, err := svc.Ensure(user.ID, month.Current())
		testutil.AssertNoError(t, err)

		testutil.AssertFloat(t, snap.Income, 90000, "income")
	})
}

func TestUpdateCurrent(t *testing.T) {
	t.Run("recomputes_in_place", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		first, err := svc.Ensure(user.ID, month.Current())
		testutil.AssertNoError(t, err)
		testutil.AssertFloat(t, first.TotalExpenses, 0, "initial expenses")

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 2500, nil)

		updated, err := svc.UpdateCurrent(user.ID)
		testutil.AssertNoError(t, err)

		if updated.ID != first.ID {
			t.Errorf("expected refresh of existing row, got new id %s", updated.ID)
		}
		testutil.AssertFloat(t, updated.TotalExpenses, 2500, "refreshed expenses")

		var count int64
		db.Model(&models.MonthlySnapshot{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 snapshot row, got %d", count)
		}
	})

	t.Run("creates_when_absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		snap, err := svc.UpdateCurrent(user.ID)
		testutil.AssertNoError(t, err)
		if snap.Month != month.Current() {
			t.Errorf("expected month %s, got %s", month.Current(), snap.Month)
		}
	})

	t.Run("leaves_past_months_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		prevKey := month.Back(time.Now(), 1)
		testutil.CreateTestSnapshot(t, db, user.ID, prevKey, 123456)

		_, err := svc.UpdateCurrent(user.ID)
		testutil.AssertNoError(t, err)

		var prev models.MonthlySnapshot
		db.Where("user_id = ? AND month = ?", user.ID, prevKey).First(&prev)
		testutil.AssertFloat(t, prev.NetWorth, 123456, "past snapshot net worth")
	})
}

func TestRecent(t *testing.T) {
	t.Run("returns_n_months_oldest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		snapshots, err := svc.Recent(user.ID, 6)
		testutil.AssertNoError(t, err)

		if len(snapshots) != 6 {
			t.Fatalf("expected 6 snapshots, got %d", len(snapshots))
		}
		now := time.Now()
		for i, snap := range snapshots {
			want := month.Back(now, 5-i)
			if snap.Month != want {
				t.Errorf("snapshot %d: expected month %s, got %s", i, want, snap.Month)
			}
		}
		if snapshots[5].Month != month.Current() {
			t.Errorf("last snapshot should be the current month, got %s", snapshots[5].Month)
		}
	})

	t.Run("reuses_stored_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 85000, 0)

		prevKey := month.Back(time.Now(), 1)
		testutil.CreateTestSnapshot(t, db, user.ID, prevKey, 50000)

		snapshots, err := svc.Recent(user.ID, 2)
		testutil.AssertNoError(t, err)

		if len(snapshots) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
		}
		testutil.AssertFloat(t, snapshots[0].NetWorth, 50000, "stored previous month kept")
	})
}

func TestMonthlyChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	incomes := NewIncomeService(db)
	svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

	t.Run("nil_for_short_history", func(t *testing.T) {
		if svc.MonthlyChanges(nil) != nil {
			t.Error("expected nil for empty history")
		}
		one := []models.MonthlySnapshot{{NetWorth: 100}}
		if svc.MonthlyChanges(one) != nil {
			t.Error("expected nil for single snapshot")
		}
	})

	t.Run("derives_deltas", func(t *testing.T) {
		history := []models.MonthlySnapshot{
			{NetWorth: 100000, TotalExpenses: 40000, TotalSavings: 10000},
			{NetWorth: 110000, TotalExpenses: 36000, TotalSavings: 12000},
		}
		changes := svc.MonthlyChanges(history)
		if changes == nil {
			t.Fatal("expected changes, got nil")
		}
		testutil.AssertFloat(t, changes.NetWorthChange, 10000, "net worth change")
		testutil.AssertFloat(t, changes.NetWorthChangePercent, 10, "net worth change percent")
		testutil.AssertFloat(t, changes.ExpenseChange, -4000, "expense change")
		testutil.AssertFloat(t, changes.ExpenseChangePercent, -10, "expense change percent")
		testutil.AssertFloat(t, changes.SavingsChange, 2000, "savings change")
		testutil.AssertFloat(t, changes.SavingsChangePercent, 20, "savings change percent")
	})

	t.Run("zero_guards_percentages", func(t *testing.T) {
		history := []models.MonthlySnapshot{
			{NetWorth: 0, TotalExpenses: 0, TotalSavings: 0},
			{NetWorth: 5000, TotalExpenses: 1000, TotalSavings: 500},
		}
		changes := svc.MonthlyChanges(history)
		if changes == nil {
			t.Fatal("expected changes, got nil")
		}
		testutil.AssertFloat(t, changes.NetWorthChangePercent, 0, "guarded net worth percent")
		testutil.AssertFloat(t, changes.ExpenseChangePercent, 0, "guarded expense percent")
		testutil.AssertFloat(t, changes.SavingsChangePercent, 0, "guarded savings percent")
	})
}

func TestRefreshAll(t *testing.T) {
	t.Run("refreshes_every_user_with_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		incomes := NewIncomeService(db)
		svc := NewSnapshotService(db, NewReportService(db, incomes), incomes)

		withProfile1 := testutil.CreateTestUser(t, db)
		withProfile2 := testutil.CreateTestUser(t, db)
		noProfile := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, withProfile1.ID, 60000, 0)
		testutil.CreateTestProfile(t, db, withProfile2.ID, 120000, 1)

		count, err := svc.RefreshAll()
		testutil.AssertNoError(t, err)
		if count != 2 {
			t.Errorf("expected 2 refreshed, got %d", count)
		}

		var rows int64
		db.Model(&models.MonthlySnapshot{}).Where("user_id = ?", noProfile.ID).Count(&rows)
		if rows != 0 {
			t.Errorf("user without profile should have no snapshot, got %d", rows)
		}
	})
}
