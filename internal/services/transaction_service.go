package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
	"hazina/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

var validTransactionTypes = map[models.TransactionType]bool{
	models.TransactionTypeExpense:   true,
	models.TransactionTypeSaving:    true,
	models.TransactionTypeIPP:       true,
	models.TransactionTypeAsset:     true,
	models.TransactionTypeLiability: true,
}

// CreateTransaction records a new transaction. The Month column is
// derived from the date in the model's save hook, so every write path
// keeps the denormalization consistent.
func (s *transactionService) CreateTransaction(
	userID string,
	date time.Time,
	categoryID *string,
	amount float64,
	txType models.TransactionType,
	notes string,
) (*models.Transaction, error) {
	if !validTransactionTypes[txType] {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	// Category is a weak reference, but reject IDs belonging to another
	// user outright at creation time.
	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.BudgetCategory{}).
			Where("id = ? AND user_id = ?", *categoryID, userID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	tx := &models.Transaction{
		UserID:     userID,
		Date:       date,
		CategoryID: categoryID,
		Amount:     amount,
		Type:       txType,
		Notes:      notes,
	}

	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// GetTransactionsByMonth returns all of a user's transactions for one
// month key.
func (s *transactionService) GetTransactionsByMonth(userID, monthKey string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("user_id = ? AND month = ?", userID, monthKey).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// GetAllTransactions returns every transaction for the user.
func (s *transactionService) GetAllTransactions(userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// GetUserTransactions returns a paginated, filtered transaction list.
func (s *transactionService) GetUserTransactions(
	userID string,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Month != nil {
		base = base.Where("month = ?", *filter.Month)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txs []models.Transaction
	if err := base.Order("date DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(txs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction. Transactions are immutable
// once written; deletion is the only edit.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	tx, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
