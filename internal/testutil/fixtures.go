package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hazina/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a profile with the given income and dependents.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string, income float64, dependents int) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:        userID,
		Name:          fmt.Sprintf("Test User %d", nextID()),
		MonthlyIncome: income,
		Dependents:    dependents,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestCategory creates a budget category of the given pool type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType, budgeted float64) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Category %d", nextID()),
		Type:           categoryType,
		BudgetedAmount: budgeted,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, categoryID *string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, txType, amount, categoryID, time.Now())
}

// CreateTestTransactionAt creates a transaction with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, categoryID *string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		Type:       txType,
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a savings goal with the given target and balance.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current float64) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: current,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestAsset creates an asset or liability of the given amount.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, assetType models.AssetType, amount float64) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Asset %d", nextID()),
		Type:        assetType,
		Amount:      amount,
		LastUpdated: time.Now(),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestInvestment creates a holding with the given units and prices.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string, units, purchasePrice, currentPrice float64) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Holding %d", nextID()),
		Type:          models.InvestmentTypeMoneyMarket,
		Units:         units,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		PurchaseDate:  time.Now(),
		LastUpdated:   time.Now(),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestIncome creates an additional income entry on the given date.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID string, amount float64, date time.Time) *models.AdditionalIncome {
	t.Helper()

	entry := &models.AdditionalIncome{
		UserID: userID,
		Amount: amount,
		Source: fmt.Sprintf("Test Source %d", nextID()),
		Date:   date,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return entry
}

// CreateTestIPPAccount creates an IPP account with the default rates.
func CreateTestIPPAccount(t *testing.T, db *gorm.DB, userID string, monthlyContribution float64) *models.IPPAccount {
	t.Helper()

	account := &models.IPPAccount{
		UserID:              userID,
		MonthlyContribution: monthlyContribution,
		TaxReliefRate:       0.30,
		LastUpdated:         time.Now(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test IPP account: %v", err)
	}
	return account
}

// CreateTestSnapshot creates a snapshot row for the given month key.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, userID, monthKey string, netWorth float64) *models.MonthlySnapshot {
	t.Helper()

	snapshot := &models.MonthlySnapshot{
		UserID:   userID,
		Month:    monthKey,
		NetWorth: netWorth,
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snapshot
}
