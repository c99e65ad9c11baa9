package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "hazina/internal/errors"
	"hazina/internal/models"
)

// backupVersion is the current export format version. Import rejects
// documents from a different version.
const backupVersion = 1

// backupService exports and imports one user's full record set as a
// portable JSON document. Import is replace-all: the user's existing
// records are removed inside the same transaction that writes the
// imported ones. Record ids are preserved so category references inside
// transactions survive a round trip.
type backupService struct {
	db *gorm.DB
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(db *gorm.DB) BackupServicer {
	return &backupService{db: db}
}

// Export collects every record belonging to the user.
func (s *backupService) Export(userID string) (*BackupDocument, error) {
	doc := &BackupDocument{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		var profile models.Profile
		err := s.db.Where("user_id = ?", userID).First(&profile).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err == nil {
			doc.Profile = &profile
		}
		return err
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Order("created_at").Find(&doc.Categories).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Order("date").Find(&doc.Transactions).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Order("created_at").Find(&doc.Goals).Error
	})
	g.Go(func() error {
		var account models.IPPAccount
		err := s.db.Where("user_id = ?", userID).First(&account).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err == nil {
			doc.IPPAccount = &account
		}
		return err
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Order("created_at").Find(&doc.Assets).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Order("created_at").Find(&doc.Investments).Error
	})
	g.Go(func() error {
		// Deleted entries are included so the trash view survives a
		// restore.
		return s.db.Where("user_id = ?", userID).Order("date").Find(&doc.AdditionalIncome).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).Order("month").Find(&doc.Snapshots).Error
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return doc, nil
}

// Import replaces the user's records with the document's contents.
// Every imported record is stamped with the importing user's id, so a
// document exported by one account cannot write into another's rows
// under its original owner.
func (s *backupService) Import(userID string, doc *BackupDocument) error {
	if doc == nil || doc.Version != backupVersion {
		return apperrors.ErrInvalidBackup
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		purge := []interface{}{
			&models.MonthlySnapshot{},
			&models.AdditionalIncome{},
			&models.Investment{},
			&models.Asset{},
			&models.IPPAccount{},
			&models.SavingsGoal{},
			&models.Transaction{},
			&models.BudgetCategory{},
			&models.Profile{},
		}
		for _, model := range purge {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		if doc.Profile != nil {
			profile := *doc.Profile
			profile.UserID = userID
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		for i := range doc.Categories {
			doc.Categories[i].UserID = userID
		}
		if len(doc.Categories) > 0 {
			if err := tx.Create(&doc.Categories).Error; err != nil {
				return err
			}
		}
		for i := range doc.Transactions {
			doc.Transactions[i].UserID = userID
		}
		if len(doc.Transactions) > 0 {
			if err := tx.Create(&doc.Transactions).Error; err != nil {
				return err
			}
		}
		for i := range doc.Goals {
			doc.Goals[i].UserID = userID
		}
		if len(doc.Goals) > 0 {
			if err := tx.Create(&doc.Goals).Error; err != nil {
				return err
			}
		}
		if doc.IPPAccount != nil {
			account := *doc.IPPAccount
			account.UserID = userID
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
		}
		for i := range doc.Assets {
			doc.Assets[i].UserID = userID
		}
		if len(doc.Assets) > 0 {
			if err := tx.Create(&doc.Assets).Error; err != nil {
				return err
			}
		}
		for i := range doc.Investments {
			doc.Investments[i].UserID = userID
		}
		if len(doc.Investments) > 0 {
			if err := tx.Create(&doc.Investments).Error; err != nil {
				return err
			}
		}
		for i := range doc.AdditionalIncome {
			doc.AdditionalIncome[i].UserID = userID
		}
		if len(doc.AdditionalIncome) > 0 {
			if err := tx.Create(&doc.AdditionalIncome).Error; err != nil {
				return err
			}
		}
		for i := range doc.Snapshots {
			doc.Snapshots[i].UserID = userID
		}
		if len(doc.Snapshots) > 0 {
			if err := tx.Create(&doc.Snapshots).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
