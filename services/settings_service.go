package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingReferralReward           = "referral_reward"
	SettingMinWithdrawal            = "min_withdrawal"
	SettingMaxWithdrawal            = "max_withdrawal"
	SettingWithdrawalsOpen          = "withdrawals_open"
	SettingSubmissionsOpen          = "task_submissions_open"
	SettingRefundRejectedWithdrawal = "withdrawal_refund_on_reject"
	SettingTasksApprovedTotal       = "tasks_approved_total"
	SettingTasksRejectedTotal       = "tasks_rejected_total"
)

// DefaultSettings are seeded at boot; admins tune them at runtime.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingReferralReward:  "1.00",
		SettingMinWithdrawal:   "10.00",
		SettingMaxWithdrawal:   "500.00",
		SettingWithdrawalsOpen: "1",
		SettingSubmissionsOpen: "1",
		// Historical behaviour keeps the pre-authorization debit on
		// rejection; flip this to refund automatically instead.
		SettingRefundRejectedWithdrawal: "0",
		SettingTasksApprovedTotal:       "0",
		SettingTasksRejectedTotal:       "0",
	}
}

// GetSetting returns nil when the key is absent.
func GetSetting(key string) (*string, error) {
	var setting models.Setting
	err := database.DB.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting.Value, nil
}

func SetSetting(key, value string) error {
	setting := models.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": time.Now()}),
	}).Create(&setting).Error
}

// IncrementSetting adds delta to a numeric setting in a single upsert
// statement, so concurrent incrementers cannot lose updates.
func IncrementSetting(key string, delta float64) error {
	return incrementSettingTx(database.DB, key, delta)
}

func incrementSettingTx(tx *gorm.DB, key string, delta float64) error {
	return tx.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = ((COALESCE(NULLIF(settings.value, ''), '0'))::numeric + ?)::text,
		    updated_at = NOW()`,
		key, strconv.FormatFloat(delta, 'f', -1, 64), delta).Error
}

func settingDecimalTx(tx *gorm.DB, key string, fallback decimal.Decimal) decimal.Decimal {
	var setting models.Setting
	if err := tx.First(&setting, "key = ?", key).Error; err != nil {
		return fallback
	}
	value, err := decimal.NewFromString(strings.TrimSpace(setting.Value))
	if err != nil {
		return fallback
	}
	return value
}

func settingBoolTx(tx *gorm.DB, key string, fallback bool) bool {
	var setting models.Setting
	if err := tx.First(&setting, "key = ?", key).Error; err != nil {
		return fallback
	}
	return parseBoolSetting(setting.Value, fallback)
}

func parseBoolSetting(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
