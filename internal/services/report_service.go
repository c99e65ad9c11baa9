package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
	"hazina/internal/month"
)

// reportService is the financial aggregator: every method derives its
// result from current storage state and holds no state of its own.
// Independent reads fan out concurrently and fan in before totals are
// combined. All ratios are zero-guarded: a zero denominator yields 0,
// never NaN or Inf.
type reportService struct {
	db      *gorm.DB
	incomes IncomeServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, incomes IncomeServicer) ReportServicer {
	return &reportService{db: db, incomes: incomes}
}

// NetWorth is Σ assets − Σ liabilities + Σ all-time non-deleted
// additional income. Additional income counts as standing cash that
// permanently raises net worth once earned, separate from the asset
// ledger; preserve this, it is a design choice rather than a bug.
func (s *reportService) NetWorth(userID string) (float64, error) {
	var (
		totalAssets      float64
		totalLiabilities float64
		additional       []models.AdditionalIncome
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Model(&models.Asset{}).
			Where("user_id = ? AND type = ?", userID, models.AssetTypeAsset).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalAssets).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.Asset{}).
			Where("user_id = ? AND type = ?", userID, models.AssetTypeLiability).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalLiabilities).Error
	})
	g.Go(func() error {
		var err error
		additional, err = s.incomes.GetAllIncome(userID, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var additionalTotal float64
	for _, entry := range additional {
		additionalTotal += entry.Amount
	}

	return totalAssets + additionalTotal - totalLiabilities, nil
}

// BudgetVsActual joins the current month's expense transactions against
// budget categories and rolls the spending up into per-pool totals.
func (s *reportService) BudgetVsActual(userID string) (*BudgetVsActual, error) {
	currentMonth := month.Current()

	var (
		categories []models.BudgetCategory
		expenses   []models.Transaction
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Find(&categories).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ? AND month = ? AND type = ?",
			userID, currentMonth, models.TransactionTypeExpense).
			Find(&expenses).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Spent per category. Transactions with a dangling or nil category
	// reference simply do not land on any pool.
	spentByCategory := make(map[string]float64)
	for _, tx := range expenses {
		if tx.CategoryID != nil {
			spentByCategory[*tx.CategoryID] += tx.Amount
		}
	}

	result := &BudgetVsActual{}
	pools := map[models.CategoryType]*PoolTotals{
		models.CategoryTypeNeeds:   &result.Needs,
		models.CategoryTypeWants:   &result.Wants,
		models.CategoryTypeSavings: &result.Savings,
		models.CategoryTypeGrowth:  &result.Growth,
	}
	for _, cat := range categories {
		pool, ok := pools[cat.Type]
		if !ok {
			continue
		}
		pool.Budgeted += cat.BudgetedAmount
		pool.Spent += spentByCategory[cat.ID]
	}

	for _, pool := range pools {
		result.TotalBudgeted += pool.Budgeted
		result.TotalSpent += pool.Spent
	}
	result.Remaining = result.TotalBudgeted - result.TotalSpent
	if result.TotalBudgeted > 0 {
		result.PercentageUsed = result.TotalSpent / result.TotalBudgeted * 100
	}

	return result, nil
}

// SavingsProgress sums targets, balances, and planned contributions over
// all goals.
func (s *reportService) SavingsProgress(userID string) (*SavingsProgress, error) {
	var goals []models.SavingsGoal
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	progress := &SavingsProgress{Goals: goals}
	for _, goal := range goals {
		progress.TotalTarget += goal.TargetAmount
		progress.TotalCurrent += goal.CurrentAmount
		progress.TotalMonthly += goal.MonthlyContribution
	}
	if progress.TotalTarget > 0 {
		progress.PercentageComplete = progress.TotalCurrent / progress.TotalTarget * 100
	}

	return progress, nil
}

// RecentTransactions returns the latest transactions, date descending.
// The id tie-break keeps the order deterministic for equal timestamps
// (UUIDv7 ids are time-ordered).
func (s *reportService) RecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}

	var txs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// NetWorthGrowth compares this month's snapshot with last month's.
// Missing either snapshot yields zeros, not an error.
func (s *reportService) NetWorthGrowth(userID string) (*NetWorthGrowth, error) {
	now := month.Current()
	prev := month.Back(time.Now(), 1)

	current, err := s.findSnapshot(userID, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.findSnapshot(userID, prev)
	if err != nil {
		return nil, err
	}

	if current == nil || previous == nil {
		return &NetWorthGrowth{}, nil
	}

	growth := current.NetWorth - previous.NetWorth
	result := &NetWorthGrowth{Growth: growth}
	if previous.NetWorth > 0 {
		result.Percentage = growth / previous.NetWorth * 100
	}
	return result, nil
}

// findSnapshot returns the month's snapshot or nil when absent.
func (s *reportService) findSnapshot(userID, monthKey string) (*models.MonthlySnapshot, error) {
	var snapshot models.MonthlySnapshot
	err := s.db.Where("user_id = ? AND month = ?", userID, monthKey).First(&snapshot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}
