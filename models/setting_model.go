package models

import "time"

type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
