package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// TaskSubmission snapshots the task title and reward at submission time so a
// later task edit cannot retroactively change what a pending claim pays out.
type TaskSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccountID int64     `gorm:"not null;index" json:"account_id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`

	TaskTitle  string          `gorm:"size:255;not null" json:"task_title"`
	TaskReward decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"task_reward"`

	Description string   `gorm:"type:text" json:"description"`
	Evidence    []string `gorm:"serializer:json" json:"evidence"`

	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SubmittedAt time.Time  `gorm:"not null" json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewedBy  *int64     `json:"reviewed_by"`
}
