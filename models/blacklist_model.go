package models

import "time"

// Presence of a row is the sole truth of blacklist status.
type BlacklistEntry struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID int64  `gorm:"not null;uniqueIndex" json:"account_id"`
	Reason    string `gorm:"type:text" json:"reason"`
	CreatedBy int64  `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}
