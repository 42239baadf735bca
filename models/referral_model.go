package models

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReferrerID int64     `gorm:"not null;index;uniqueIndex:idx_referral_pair" json:"referrer_id"`
	ReferredID int64     `gorm:"not null;uniqueIndex:idx_referral_pair" json:"referred_id"`

	CreatedAt time.Time `json:"created_at"`
}
