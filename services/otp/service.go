package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/logging"
	"github.com/streamify/streamify/services/mail"
	"github.com/streamify/streamify/services/user"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidCode covers wrong, expired and already-used codes alike so
// a caller probing the endpoint learns nothing about which it was.
var ErrInvalidCode = errors.New("invalid or expired code")

const (
	codeMin  = 100000
	codeSpan = 900000
)

type Service struct {
	config *config.Config
	db     *gorm.DB
	mail   mail.Sender
	logger *logging.Service

	// issueLocks serializes Issue per user so two concurrent logins
	// cannot invalidate each other's freshly created code.
	issueLocks sync.Map
}

func NewService(cfg *config.Config, db *gorm.DB, sender mail.Sender, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		mail:   sender,
		logger: logger,
	}
}

// GenerateCode draws a uniformly random six digit code. The range
// starts at 100000, so codes never carry a leading zero.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

// Issue invalidates every unused code the user still holds, stores a
// fresh one and emails it. Resending is just calling Issue again. The
// mail send happens inside the request; a slow provider slows the
// caller, and a send failure surfaces as the request's error.
func (s *Service) Issue(u *user.User) (string, error) {
	lock := s.userLock(u.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.db.Model(&Code{}).
		Where("user_id = ? AND is_used = ?", u.ID, false).
		Update("is_used", true).Error; err != nil {
		return "", fmt.Errorf("failed to invalidate previous codes: %w", err)
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	record := &Code{
		UserID: u.ID,
		Code:   code,
		IsUsed: false,
	}
	if err := s.db.Create(record).Error; err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("issued OTP code",
			zap.Uint("user_id", u.ID),
			zap.Duration("expiry", s.config.OTP.Expiry))
	}

	subject := fmt.Sprintf("Your %s OTP Code", s.config.App.Name)
	body := fmt.Sprintf("Your OTP code is: %s\n\nThis code expires in %d minutes.",
		code, int(s.config.OTP.Expiry.Minutes()))

	if err := s.mail.SendPlain([]string{u.Email}, subject, body); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to email OTP code",
				zap.Error(err),
				zap.Uint("user_id", u.ID))
		}
		return "", fmt.Errorf("failed to send code: %w", err)
	}

	return code, nil
}

// Verify redeems a submitted code. When several unused rows match (a
// pre-serialization artifact), the most recently created wins. A match
// that has merely expired is left untouched; it already cannot be used.
func (s *Service) Verify(userID uint, submitted string) error {
	var record Code
	err := s.db.
		Where("user_id = ? AND code = ? AND is_used = ?", userID, submitted, false).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.logger != nil {
				s.logger.Warn("OTP verification failed: no matching code", zap.Uint("user_id", userID))
			}
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to look up code: %w", err)
	}

	if !record.ValidAt(time.Now(), s.config.OTP.Expiry) {
		if s.logger != nil {
			s.logger.Warn("OTP verification failed: code expired",
				zap.Uint("user_id", userID),
				zap.Time("created_at", record.CreatedAt))
		}
		return ErrInvalidCode
	}

	if err := s.db.Model(&record).Update("is_used", true).Error; err != nil {
		return fmt.Errorf("failed to mark code as used: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("OTP verified", zap.Uint("user_id", userID))
	}
	return nil
}

// CleanupExpired deletes rows older than the retention period. By then
// every such row is either used or long expired, so nothing redeemable
// is ever removed.
func (s *Service) CleanupExpired() error {
	cutoff := time.Now().Add(-s.config.OTP.Retention)

	result := s.db.Where("created_at < ?", cutoff).Delete(&Code{})
	if result.Error != nil {
		return fmt.Errorf("failed to clean up codes: %w", result.Error)
	}

	if s.logger != nil && result.RowsAffected > 0 {
		s.logger.Info("cleaned up old OTP codes", zap.Int64("codes_removed", result.RowsAffected))
	}
	return nil
}

func (s *Service) userLock(userID uint) *sync.Mutex {
	lock, _ := s.issueLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
