package services

import (
	"encoding/json"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"gorm.io/gorm"
)

const (
	spamWindowShort = 60 * time.Second
	spamWindowLong  = 300 * time.Second

	spamShortLimit = 10
	spamLongLimit  = 30

	spamThrottleDuration = 5 * time.Minute
)

// LogActivity appends one entry to the activity log. Command and
// button-click events additionally bump the matching account counter with an
// atomic expression, so the counters stay honest under concurrent events.
func LogActivity(accountID int64, activityType string, data map[string]interface{}, chatID *int64) error {
	payload := "{}"
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(raw)
	}

	entry := models.ActivityLog{
		AccountID: accountID,
		Type:      activityType,
		Data:      payload,
		ChatID:    chatID,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return err
	}

	switch activityType {
	case models.ActivityCommand:
		return bumpCounter(accountID, "command_count")
	case models.ActivityButtonClick:
		return bumpCounter(accountID, "button_click_count")
	}
	return nil
}

func bumpCounter(accountID int64, column string) error {
	return database.DB.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update(column, gorm.Expr(column+" + 1")).Error
}

func CountRecentActivity(accountID int64, types []string, window time.Duration) (int64, error) {
	var count int64
	err := database.DB.Model(&models.ActivityLog{}).
		Where("account_id = ? AND type IN ? AND created_at > ?", accountID, types, time.Now().Add(-window)).
		Count(&count).Error
	return count, err
}

// spamVerdict decides whether the two window counts cross the flood limits.
func spamVerdict(shortCount, longCount int64) bool {
	return shortCount > spamShortLimit || longCount > spamLongLimit
}

func spamScore(shortCount, longCount int64) float64 {
	return 2*float64(shortCount) + 0.5*float64(longCount)
}

type SpamReport struct {
	IsSpamming     bool       `json:"is_spamming"`
	SpamScore      float64    `json:"spam_score"`
	RecentCount    int64      `json:"recent_count"`
	FiveMinCount   int64      `json:"five_min_count"`
	ThrottledUntil *time.Time `json:"throttled_until"`
}

// CheckSpamBehavior counts message and command events in the trailing 60s
// and 300s windows. A flooder gets throttled for five minutes; a quiet
// account has its spam score decayed toward zero by one per check.
func CheckSpamBehavior(accountID int64) (*SpamReport, error) {
	account, err := GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	countable := []string{models.ActivityMessage, models.ActivityCommand}
	recent, err := CountRecentActivity(accountID, countable, spamWindowShort)
	if err != nil {
		return nil, err
	}
	fiveMin, err := CountRecentActivity(accountID, countable, spamWindowLong)
	if err != nil {
		return nil, err
	}

	report := &SpamReport{RecentCount: recent, FiveMinCount: fiveMin}

	if spamVerdict(recent, fiveMin) {
		until := time.Now().Add(spamThrottleDuration)
		score := spamScore(recent, fiveMin)
		_, err := UpdateAccount(accountID, map[string]interface{}{
			"spam_score":      score,
			"is_throttled":    true,
			"throttled_until": until,
		})
		if err != nil {
			return nil, err
		}
		report.IsSpamming = true
		report.SpamScore = score
		report.ThrottledUntil = &until
		return report, nil
	}

	score := account.SpamScore - 1
	if score < 0 {
		score = 0
	}
	patch := map[string]interface{}{"spam_score": score}
	if account.IsThrottled && (account.ThrottledUntil == nil || account.ThrottledUntil.Before(time.Now())) {
		patch["is_throttled"] = false
		patch["throttled_until"] = nil
	}
	if _, err := UpdateAccount(accountID, patch); err != nil {
		return nil, err
	}
	report.SpamScore = score
	return report, nil
}
