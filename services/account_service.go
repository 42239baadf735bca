package services

import (
	"errors"
	"time"

	"github.com/anjiri1684/reward_ledger/database"
	"github.com/anjiri1684/reward_ledger/models"
	"github.com/anjiri1684/reward_ledger/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Floor for the hours-since-registration divisor, keeps brand-new accounts
// from producing absurd activity scores.
const minAccountAgeHours = 0.01

// EnsureOptions carries the optional context an inbound event can attach to
// an EnsureAccount call.
type EnsureOptions struct {
	Username      string
	TouchActivity bool
	ChatType      string // "private", "group", "supergroup", "channel"
	ReferredBy    *int64
	ReferralCode  string // start-parameter variant, resolved to an account
}

// EnsureAccount upserts the account row under a row lock. Concurrent calls
// for the same id converge to one row, and counter bumps cannot be lost to
// an uncoordinated read-then-write race.
func EnsureAccount(id int64, opts EnsureOptions) (*models.Account, error) {
	var account models.Account
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := createAccount(tx, id, opts); err != nil {
				return err
			}
			// A concurrent Ensure may have won the insert; re-read under lock either way.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", id).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		now := time.Now()
		if opts.Username != "" && (account.Username == nil || *account.Username != opts.Username) {
			username := opts.Username
			account.Username = &username
		}
		if account.ReferredBy == nil {
			if referrer := resolveReferrer(tx, id, opts); referrer != nil {
				account.ReferredBy = referrer
			}
		}
		account.LastSeenAt = now

		if opts.TouchActivity {
			account.MessageCount++
			switch opts.ChatType {
			case "group", "supergroup":
				account.GroupMessageCount++
			}
			account.CurrentStreak, account.LongestStreak = advanceStreak(
				account.LastActivityDate, account.CurrentStreak, account.LongestStreak, now)
			today := utcDate(now)
			account.LastActivityDate = &today
			account.ActivityScore = activityScore(account.MessageCount, account.RegisteredAt, now)
		}

		return tx.Save(&account).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func createAccount(tx *gorm.DB, id int64, opts EnsureOptions) error {
	code, err := utils.GenerateUniqueReferralCode(tx)
	if err != nil {
		return err
	}
	now := time.Now()
	fresh := models.Account{
		ID:             id,
		ReferralCode:   code,
		RegisteredAt:   now,
		LastSeenAt:     now,
		EngagementTier: models.TierRegular,
	}
	if opts.Username != "" {
		username := opts.Username
		fresh.Username = &username
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error
}

// resolveReferrer turns the incoming referral hint into a concrete account
// id, refusing self-referrals and unknown codes.
func resolveReferrer(tx *gorm.DB, accountID int64, opts EnsureOptions) *int64 {
	if opts.ReferredBy != nil && *opts.ReferredBy != accountID {
		return opts.ReferredBy
	}
	if opts.ReferralCode != "" {
		var referrer models.Account
		if err := tx.First(&referrer, "referral_code = ?", opts.ReferralCode).Error; err == nil {
			if referrer.ID != accountID {
				id := referrer.ID
				return &id
			}
		}
	}
	return nil
}

func GetAccount(id int64) (*models.Account, error) {
	var account models.Account
	err := database.DB.First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount applies a partial field patch and stamps updated_at.
func UpdateAccount(id int64, patch map[string]interface{}) (*models.Account, error) {
	result := database.DB.Model(&models.Account{}).Where("id = ?", id).Updates(stampUpdated(patch))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var account models.Account
	if err := database.DB.First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// stampUpdated copies the patch before adding updated_at, so the caller's
// map is never mutated.
func stampUpdated(patch map[string]interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(patch)+1)
	for k, v := range patch {
		fields[k] = v
	}
	fields["updated_at"] = time.Now()
	return fields
}

// advanceStreak applies the UTC-day streak rule: same day is a no-op, a one
// day gap extends the streak, anything longer resets it to 1. The longest
// streak never decreases.
func advanceStreak(lastActivity *time.Time, current, longest int, now time.Time) (int, int) {
	if lastActivity == nil {
		if longest < 1 {
			longest = 1
		}
		return 1, longest
	}

	today := utcDate(now)
	last := utcDate(*lastActivity)
	gapDays := int(today.Sub(last).Hours() / 24)

	switch {
	case gapDays == 0:
		// already counted today
	case gapDays == 1:
		current++
	default:
		current = 1
	}
	if current > longest {
		longest = current
	}
	return current, longest
}

func utcDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func activityScore(messageCount int64, registeredAt, now time.Time) float64 {
	hours := now.Sub(registeredAt).Hours()
	if hours < minAccountAgeHours {
		hours = minAccountAgeHours
	}
	return float64(messageCount) / hours
}
