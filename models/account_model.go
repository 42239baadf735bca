package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TierElite   = "Elite"
	TierActive  = "Active"
	TierRegular = "Regular"
	TierDormant = "Dormant"
	TierGhost   = "Ghost"
)

type Account struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	Username      *string         `gorm:"size:64;index" json:"username"`
	Balance       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	WalletAddress *string         `gorm:"size:128" json:"wallet_address"`
	IsVerified    bool            `gorm:"not null;default:false" json:"is_verified"`

	// Set at most once, first write wins.
	ReferredBy   *int64 `gorm:"index" json:"referred_by"`
	ReferralCode string `gorm:"size:10;uniqueIndex" json:"referral_code"`

	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
	LastSeenAt   time.Time `gorm:"not null;index" json:"last_seen_at"`

	MessageCount      int64 `gorm:"not null;default:0" json:"message_count"`
	GroupMessageCount int64 `gorm:"not null;default:0" json:"group_message_count"`
	CommandCount      int64 `gorm:"not null;default:0" json:"command_count"`
	ButtonClickCount  int64 `gorm:"not null;default:0" json:"button_click_count"`

	// Messages per hour since registration.
	ActivityScore float64 `gorm:"not null;default:0" json:"activity_score"`

	CurrentStreak    int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"not null;default:0" json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`

	EngagementTier string     `gorm:"size:16;not null;default:'Regular';index" json:"engagement_tier"`
	TierUpdatedAt  *time.Time `json:"tier_updated_at"`

	// Referral quality percentage persisted by the referral decay sweep.
	ReferralQuality float64    `gorm:"not null;default:0" json:"referral_quality"`
	LastDecayAt     *time.Time `json:"-"`

	SpamScore      float64    `gorm:"not null;default:0" json:"spam_score"`
	IsThrottled    bool       `gorm:"not null;default:false" json:"is_throttled"`
	ThrottledUntil *time.Time `json:"throttled_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
