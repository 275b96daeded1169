package otp

import (
	"time"
)

// Code is one issued passcode. Records are soft-invalidated via IsUsed
// rather than deleted, so the table doubles as an audit trail; the
// periodic cleanup prunes rows past the retention window.
type Code struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Code      string    `json:"-" gorm:"size:6;not null"`
	IsUsed    bool      `json:"is_used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (Code) TableName() string {
	return "otp_codes"
}

// ValidAt reports whether the code could still be redeemed at the given
// instant. Expiry is evaluated lazily at check time; nothing updates
// stored rows as they age out.
func (c *Code) ValidAt(now time.Time, window time.Duration) bool {
	return !c.IsUsed && now.Before(c.CreatedAt.Add(window))
}
