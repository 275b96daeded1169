package totp

import (
	"time"
)

type TOTPSecret struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Secret    string    `json:"-" gorm:"not null"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TOTPSecret) TableName() string {
	return "totp_secrets"
}
