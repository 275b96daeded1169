package session

import (
	"time"

	"github.com/mileusna/useragent"
	"gorm.io/gorm"
)

// Service maintains the per-user session inventory.
type Service struct {
	db      *gorm.DB
	manager *Manager
}

func NewService(db *gorm.DB, manager *Manager) *Service {
	return &Service{db: db, manager: manager}
}

func (s *Service) Track(userID uint, token, ipAddress, userAgent string, expiresAt time.Time) error {
	record := UserSession{
		UserID:    userID,
		Token:     token,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		Device:    DeviceLabel(userAgent),
		CreatedAt: time.Now(),
		LastUsed:  time.Now(),
		ExpiresAt: expiresAt,
	}

	return s.db.Create(&record).Error
}

func (s *Service) TouchLastUsed(token string) error {
	return s.db.Model(&UserSession{}).
		Where("token = ?", token).
		Update("last_used", time.Now()).Error
}

func (s *Service) UserSessions(userID uint, currentToken string) ([]UserSession, error) {
	var sessions []UserSession

	err := s.db.Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("last_used DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].Token == currentToken {
			sessions[i].Current = true
		}
	}

	return sessions, nil
}

// Revoke destroys the underlying scs session as well as the inventory
// row, so the session stops working immediately.
func (s *Service) Revoke(userID, sessionID uint) error {
	var record UserSession
	if err := s.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&record).Error; err != nil {
		return err
	}

	if s.manager != nil && s.manager.SessionManager.Store != nil {
		if err := s.manager.SessionManager.Store.Delete(record.Token); err != nil {
			return err
		}
	}

	return s.db.Delete(&record).Error
}

func (s *Service) RemoveByToken(token string) error {
	return s.db.Where("token = ?", token).Delete(&UserSession{}).Error
}

func (s *Service) CleanupExpired() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&UserSession{}).Error
}

// DeviceLabel condenses a raw User-Agent header into "Firefox 130 on
// macOS" style text for the sessions page.
func DeviceLabel(userAgentString string) string {
	if userAgentString == "" {
		return "Unknown device"
	}

	ua := useragent.Parse(userAgentString)

	browser := ua.Name
	if browser == "" {
		browser = "Unknown browser"
	} else if ua.Version != "" {
		browser = browser + " " + ua.Version
	}

	if ua.OS != "" {
		return browser + " on " + ua.OS
	}
	return browser
}
