package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TaskStatusActive  = "active"
	TaskStatusRetired = "retired"
)

type Task struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Reward      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"reward"`
	Status      string          `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedBy   int64           `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
