package services

import (
	"time"

	"hazina/internal/models"
	"hazina/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProfileServicer defines the contract for the financial profile and the
// onboarding flow that seeds the generated budget.
type ProfileServicer interface {
	// CreateProfile creates the user's profile, seeds the generated
	// budget categories, and opens the default IPP account.
	CreateProfile(userID, name string, monthlyIncome float64, dependents int) (*models.Profile, error)
	GetProfile(userID string) (*models.Profile, error)
	UpdateProfile(userID, name string, monthlyIncome *float64, dependents *int) (*models.Profile, error)
	// RegenerateCategories replaces the default (generated) categories
	// with a fresh generation from the current profile. User-created
	// categories are left untouched.
	RegenerateCategories(userID string) ([]models.BudgetCategory, error)
}

// CategoryServicer defines the contract for budget category CRUD.
type CategoryServicer interface {
	CreateCategory(userID, name string, amount float64, ctype models.CategoryType) (*models.BudgetCategory, error)
	GetCategories(userID string) ([]models.BudgetCategory, error)
	GetCategoriesByType(userID string, ctype models.CategoryType) ([]models.BudgetCategory, error)
	GetCategoryByID(userID, categoryID string) (*models.BudgetCategory, error)
	UpdateCategory(userID, categoryID, name string, amount *float64) (*models.BudgetCategory, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	Month      *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, date time.Time, categoryID *string, amount float64, txType models.TransactionType, notes string) (*models.Transaction, error)
	GetTransactionsByMonth(userID, monthKey string) ([]models.Transaction, error)
	GetAllTransactions(userID string) ([]models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount, currentAmount, monthlyContribution float64) (*models.SavingsGoal, error)
	GetGoals(userID string) ([]models.SavingsGoal, error)
	GetGoalByID(userID, goalID string) (*models.SavingsGoal, error)
	UpdateGoal(userID, goalID, name string, targetAmount, monthlyContribution *float64) (*models.SavingsGoal, error)
	DeleteGoal(userID, goalID string) error
	// AddContribution increases the goal's current amount. Overshooting
	// the target is allowed.
	AddContribution(userID, goalID string, amount float64) (*models.SavingsGoal, error)
}

// IPPSummary decorates the IPP account with derived relief figures.
type IPPSummary struct {
	models.IPPAccount
	TaxRelief     float64 `json:"tax_relief"`
	EffectiveCost float64 `json:"effective_cost"`
}

// IPPServicer defines the contract for the Individual Pension Plan account.
type IPPServicer interface {
	// GetAccount returns the user's IPP account, or (nil, nil) when none
	// is configured. Absence is a valid state, not an error.
	GetAccount(userID string) (*models.IPPAccount, error)
	CreateAccount(userID string, monthlyContribution float64) (*models.IPPAccount, error)
	UpdateMonthlyContribution(userID string, monthlyContribution float64) (*models.IPPAccount, error)
	// LogContribution applies a contribution (and optional realized
	// growth) additively to the account balance and running totals.
	LogContribution(userID string, amount, realizedGrowth float64) (*models.IPPAccount, error)
	// GetSummary returns the account decorated with tax relief figures,
	// or (nil, nil) when no account is configured.
	GetSummary(userID string) (*IPPSummary, error)
}

// AssetServicer defines the contract for the asset/liability ledger.
type AssetServicer interface {
	CreateAsset(userID, name string, amount float64, atype models.AssetType, category string) (*models.Asset, error)
	GetAssets(userID string) ([]models.Asset, error)
	GetAssetsByType(userID string, atype models.AssetType) ([]models.Asset, error)
	UpdateAsset(userID, assetID, name string, amount *float64, category string) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
}

// PortfolioSummary aggregates investment holdings.
type PortfolioSummary struct {
	TotalInvested  float64                        `json:"total_invested"`
	TotalValue     float64                        `json:"total_value"`
	TotalGain      float64                        `json:"total_gain"`
	GainPercentage float64                        `json:"gain_percentage"`
	CountByType    map[models.InvestmentType]int  `json:"count_by_type"`
	Holdings       []models.Investment            `json:"holdings"`
}

// InvestmentServicer defines the contract for investment holdings.
type InvestmentServicer interface {
	AddInvestment(userID, name string, itype models.InvestmentType, units, purchasePrice, currentPrice float64, purchaseDate time.Time, notes string) (*models.Investment, error)
	GetInvestments(userID string) ([]models.Investment, error)
	GetInvestmentByID(userID, investmentID string) (*models.Investment, error)
	UpdatePrice(userID, investmentID string, currentPrice float64) (*models.Investment, error)
	DeleteInvestment(userID, investmentID string) error
	GetPortfolio(userID string) (*PortfolioSummary, error)
}

// IncomeServicer defines the contract for additional income entries.
// Soft-delete filtering is centralized here: query methods exclude
// deleted entries unless explicitly asked for them.
type IncomeServicer interface {
	CreateIncome(userID string, date time.Time, amount float64, source, description string) (*models.AdditionalIncome, error)
	GetIncomeByMonth(userID, monthKey string) ([]models.AdditionalIncome, error)
	GetAllIncome(userID string, includeDeleted bool) ([]models.AdditionalIncome, error)
	// DeleteIncome soft-deletes: the entry moves to the trash view and
	// drops out of all aggregation.
	DeleteIncome(userID, incomeID string) error
	RestoreIncome(userID, incomeID string) (*models.AdditionalIncome, error)
}

// PoolTotals holds budgeted vs spent for one category pool.
type PoolTotals struct {
	Budgeted float64 `json:"budgeted"`
	Spent    float64 `json:"spent"`
}

// BudgetVsActual is the current-month budget performance rollup.
type BudgetVsActual struct {
	Needs          PoolTotals `json:"needs"`
	Wants          PoolTotals `json:"wants"`
	Savings        PoolTotals `json:"savings"`
	Growth         PoolTotals `json:"growth"`
	TotalBudgeted  float64    `json:"total_budgeted"`
	TotalSpent     float64    `json:"total_spent"`
	Remaining      float64    `json:"remaining"`
	PercentageUsed float64    `json:"percentage_used"`
}

// SavingsProgress aggregates all savings goals.
type SavingsProgress struct {
	TotalTarget        float64              `json:"total_target"`
	TotalCurrent       float64              `json:"total_current"`
	TotalMonthly       float64              `json:"total_monthly"`
	PercentageComplete float64              `json:"percentage_complete"`
	Goals              []models.SavingsGoal `json:"goals"`
}

// NetWorthGrowth compares the current month's snapshot to the previous
// month's. Both figures are zero when either snapshot is missing.
type NetWorthGrowth struct {
	Growth     float64 `json:"growth"`
	Percentage float64 `json:"percentage"`
}

// ReportServicer is the financial aggregator: read-and-derive functions
// over current storage state. Nothing here mutates storage.
type ReportServicer interface {
	// NetWorth is assets minus liabilities plus all-time non-deleted
	// additional income. Additional income permanently raises net worth
	// once earned; this is deliberate, not a bug.
	NetWorth(userID string) (float64, error)
	BudgetVsActual(userID string) (*BudgetVsActual, error)
	SavingsProgress(userID string) (*SavingsProgress, error)
	RecentTransactions(userID string, limit int) ([]models.Transaction, error)
	NetWorthGrowth(userID string) (*NetWorthGrowth, error)
}

// MonthlyChanges holds month-over-month deltas between the last two
// snapshots of an ordered sequence.
type MonthlyChanges struct {
	NetWorthChange        float64 `json:"net_worth_change"`
	NetWorthChangePercent float64 `json:"net_worth_change_percent"`
	ExpenseChange         float64 `json:"expense_change"`
	ExpenseChangePercent  float64 `json:"expense_change_percent"`
	SavingsChange         float64 `json:"savings_change"`
	SavingsChangePercent  float64 `json:"savings_change_percent"`
}

// SnapshotServicer manages the one-snapshot-per-month record set.
type SnapshotServicer interface {
	// Ensure returns the month's snapshot, creating it from current
	// state when absent. Fails with profile-not-found when the user has
	// no profile.
	Ensure(userID, monthKey string) (*models.MonthlySnapshot, error)
	// UpdateCurrent recomputes and replaces the current month's
	// snapshot. Past months are never refreshed.
	UpdateCurrent(userID string) (*models.MonthlySnapshot, error)
	// Recent walks back n calendar months (inclusive of the current
	// one), ensuring each. Missing history is backfilled with today's
	// net worth; see the service doc for why.
	Recent(userID string, n int) ([]models.MonthlySnapshot, error)
	GetAll(userID string) ([]models.MonthlySnapshot, error)
	MonthlyChanges(snapshots []models.MonthlySnapshot) *MonthlyChanges
	// RefreshAll updates the current month's snapshot for every user
	// with a profile. Returns the number refreshed.
	RefreshAll() (int, error)
}

// BackupDocument is the portable JSON export of one user's records.
type BackupDocument struct {
	Version          int                       `json:"version"`
	ExportedAt       time.Time                 `json:"exported_at"`
	Profile          *models.Profile           `json:"profile,omitempty"`
	Categories       []models.BudgetCategory   `json:"categories"`
	Transactions     []models.Transaction      `json:"transactions"`
	Goals            []models.SavingsGoal      `json:"goals"`
	IPPAccount       *models.IPPAccount        `json:"ipp_account,omitempty"`
	Assets           []models.Asset            `json:"assets"`
	Investments      []models.Investment       `json:"investments"`
	AdditionalIncome []models.AdditionalIncome `json:"additional_income"`
	Snapshots        []models.MonthlySnapshot  `json:"snapshots"`
}

// BackupServicer exports and imports a user's full record set as JSON.
type BackupServicer interface {
	Export(userID string) (*BackupDocument, error)
	Import(userID string, doc *BackupDocument) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
