package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
	"hazina/internal/month"
)

// snapshotService manages the one-row-per-month snapshot set. Snapshots
// are created lazily: nothing writes them until something asks for a
// month. Past months are immutable once written; only the current month
// is ever recomputed.
//
// Backfilling a month that was never snapshotted while it was current
// uses today's net worth, since the point-in-time value is gone. The
// income and transaction figures for that month are still exact.
type snapshotService struct {
	db      *gorm.DB
	reports ReportServicer
	incomes IncomeServicer
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB, reports ReportServicer, incomes IncomeServicer) SnapshotServicer {
	return &snapshotService{db: db, reports: reports, incomes: incomes}
}

// Ensure returns the snapshot for monthKey, computing and storing it
// when absent.
func (s *snapshotService) Ensure(userID, monthKey string) (*models.MonthlySnapshot, error) {
	if !month.Valid(monthKey) {
		return nil, apperrors.ErrInvalidMonthKey
	}

	var existing models.MonthlySnapshot
	err := s.db.Where("user_id = ? AND month = ?", userID, monthKey).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snapshot, err := s.compute(userID, monthKey)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// UpdateCurrent recomputes the current month's snapshot from live state
// and replaces the stored row. Calling it twice in a row without other
// writes in between produces identical figures.
func (s *snapshotService) UpdateCurrent(userID string) (*models.MonthlySnapshot, error) {
	currentMonth := month.Current()

	snapshot, err := s.compute(userID, currentMonth)
	if err != nil {
		return nil, err
	}

	var existing models.MonthlySnapshot
	err = s.db.Where("user_id = ? AND month = ?", userID, currentMonth).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"income":            snapshot.Income,
			"total_expenses":    snapshot.TotalExpenses,
			"total_savings":     snapshot.TotalSavings,
			"ipp_contributions": snapshot.IPPContributions,
			"net_worth":         snapshot.NetWorth,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		existing.Income = snapshot.Income
		existing.TotalExpenses = snapshot.TotalExpenses
		existing.TotalSavings = snapshot.TotalSavings
		existing.IPPContributions = snapshot.IPPContributions
		existing.NetWorth = snapshot.NetWorth
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// Recent returns snapshots for the last n calendar months, oldest
// first, including the current month. Months without a stored snapshot
// are computed and persisted on the way through.
func (s *snapshotService) Recent(userID string, n int) ([]models.MonthlySnapshot, error) {
	if n <= 0 {
		n = 6
	}

	now := time.Now()
	snapshots := make([]models.MonthlySnapshot, 0, n)
	for i := n - 1; i >= 0; i-- {
		snapshot, err := s.Ensure(userID, month.Back(now, i))
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	return snapshots, nil
}

// GetAll returns every stored snapshot for the user, oldest first. The
// month key sorts lexicographically in chronological order.
func (s *snapshotService) GetAll(userID string) ([]models.MonthlySnapshot, error) {
	var snapshots []models.MonthlySnapshot
	if err := s.db.Where("user_id = ?", userID).Order("month").Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshots, nil
}

// MonthlyChanges derives deltas between the last two snapshots of an
// ordered sequence. Returns nil when there are fewer than two.
func (s *snapshotService) MonthlyChanges(snapshots []models.MonthlySnapshot) *MonthlyChanges {
	if len(snapshots) < 2 {
		return nil
	}

	latest := snapshots[len(snapshots)-1]
	previous := snapshots[len(snapshots)-2]

	changes := &MonthlyChanges{
		NetWorthChange: latest.NetWorth - previous.NetWorth,
		ExpenseChange:  latest.TotalExpenses - previous.TotalExpenses,
		SavingsChange:  latest.TotalSavings - previous.TotalSavings,
	}
	if previous.NetWorth > 0 {
		changes.NetWorthChangePercent = changes.NetWorthChange / previous.NetWorth * 100
	}
	if previous.TotalExpenses > 0 {
		changes.ExpenseChangePercent = changes.ExpenseChange / previous.TotalExpenses * 100
	}
	if previous.TotalSavings > 0 {
		changes.SavingsChangePercent = changes.SavingsChange / previous.TotalSavings * 100
	}
	return changes
}

// RefreshAll recomputes the current month's snapshot for every user
// with a profile. Run from the scheduled job and the maintenance
// endpoint.
func (s *snapshotService) RefreshAll() (int, error) {
	var userIDs []string
	if err := s.db.Model(&models.Profile{}).Pluck("user_id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	refreshed := 0
	for _, userID := range userIDs {
		if _, err := s.UpdateCurrent(userID); err != nil {
			return refreshed, err
		}
		refreshed++
	}
	return refreshed, nil
}

// compute builds a snapshot for monthKey from current state. The income
// and transaction figures come from the month's records; net worth is
// point-in-time.
func (s *snapshotService) compute(userID, monthKey string) (*models.MonthlySnapshot, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var (
		transactions []models.Transaction
		additional   []models.AdditionalIncome
		netWorth     float64
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Where("user_id = ? AND month = ?", userID, monthKey).
			Find(&transactions).Error
	})
	g.Go(func() error {
		var err error
		additional, err = s.incomes.GetIncomeByMonth(userID, monthKey)
		return err
	})
	g.Go(func() error {
		var err error
		netWorth, err = s.reports.NetWorth(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snapshot := &models.MonthlySnapshot{
		UserID:   userID,
		Month:    monthKey,
		Income:   profile.MonthlyIncome,
		NetWorth: netWorth,
	}
	for _, entry := range additional {
		snapshot.Income += entry.Amount
	}
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeExpense:
			snapshot.TotalExpenses += tx.Amount
		case models.TransactionTypeSaving:
			snapshot.TotalSavings += tx.Amount
		case models.TransactionTypeIPP:
			snapshot.IPPContributions += tx.Amount
		}
	}
	return snapshot, nil
}
