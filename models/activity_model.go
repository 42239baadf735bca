package models

import "time"

const (
	ActivityMessage       = "message"
	ActivityCommand       = "command"
	ActivityButtonClick   = "button_click"
	ActivityPhoto         = "photo"
	ActivityJoinedGroup   = "joined_group"
	ActivityLeftGroup     = "left_group"
	ActivityFlaggedAsFake = "flagged_as_fake"
)

// ActivityLog is append-only and read exclusively by the scoring engine.
type ActivityLog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID int64  `gorm:"not null;index:idx_activity_account_time" json:"account_id"`
	Type      string `gorm:"size:32;not null;index" json:"type"`
	Data      string `gorm:"type:jsonb" json:"data"`
	ChatID    *int64 `json:"chat_id"`

	CreatedAt time.Time `gorm:"index:idx_activity_account_time" json:"created_at"`
}
