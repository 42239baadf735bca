package services

import (
	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"gorm.io/gorm/clause"
)

// Blacklist marks an account; blacklisting twice keeps the original entry.
// The account row itself is never deleted.
func Blacklist(accountID int64, reason string, adminID int64) error {
	var exists int64
	if err := database.DB.Model(&models.Account{}).Where("id = ?", accountID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	entry := models.BlacklistEntry{
		AccountID: accountID,
		Reason:    reason,
		CreatedBy: adminID,
	}
	return database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

func Unblacklist(accountID int64) error {
	result := database.DB.Where("account_id = ?", accountID).Delete(&models.BlacklistEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func IsBlacklisted(accountID int64) (bool, error) {
	var count int64
	err := database.DB.Model(&models.BlacklistEntry{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count > 0, err
}

func ListBlacklisted() ([]models.BlacklistEntry, error) {
	var entries []models.BlacklistEntry
	err := database.DB.Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
