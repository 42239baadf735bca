package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompletedTask is the permanent proof that an account was paid for a task.
// Written exactly once per (account, task) pair.
type CompletedTask struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	AccountID  int64           `gorm:"not null;uniqueIndex:idx_completed_pair" json:"account_id"`
	TaskID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_completed_pair" json:"task_id"`
	RewardPaid decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"reward_paid"`

	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
}
