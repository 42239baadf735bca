package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// WithdrawalRequest debits the account balance at creation time
// (pre-authorization hold); review only flips the status.
type WithdrawalRequest struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccountID int64           `gorm:"not null;index" json:"account_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`

	// Wallet snapshot at request time.
	WalletAddress string `gorm:"size:128;not null" json:"wallet_address"`

	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdminNotes  *string    `gorm:"type:text" json:"admin_notes"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at"`
	ReviewedBy  *int64     `json:"reviewed_by"`
}
