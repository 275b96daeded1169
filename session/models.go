package session

import (
	"time"
)

// UserSession is the inventory row behind the "active sessions" view on
// the profile page. The scs store itself remains the source of truth
// for session data.
type UserSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	Device    string    `json:"device" gorm:"size:120"`
	Current   bool      `json:"current" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
