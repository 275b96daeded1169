package totp

import (
	"errors"
	"fmt"

	"github.com/pquerna/otp/totp"
	"github.com/streamify/streamify/config"
	"github.com/streamify/streamify/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTOTPDisabled   = errors.New("TOTP is disabled")
	ErrInvalidCode    = errors.New("invalid TOTP code")
	ErrSecretExists   = errors.New("TOTP secret already exists for user")
	ErrSecretNotFound = errors.New("TOTP secret not found for user")
)

// Service implements the optional authenticator-app second factor. An
// enrolled user may submit a TOTP code at the verify step in place of
// the emailed one.
type Service struct {
	config *config.Config
	db     *gorm.DB
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

// Enroll generates and stores a secret for the user. The secret stays
// disabled until the user proves possession via Enable.
func (s *Service) Enroll(userID uint, accountName string) (*TOTPSecret, string, error) {
	if !s.config.TOTP.Enabled {
		return nil, "", ErrTOTPDisabled
	}

	var existing TOTPSecret
	err := s.db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil, "", ErrSecretExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing TOTP secret: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.config.TOTP.Issuer,
		AccountName: accountName,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	secret := &TOTPSecret{
		UserID:  userID,
		Secret:  key.Secret(),
		Enabled: false,
	}
	if err := s.db.Create(secret).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("TOTP secret enrolled", zap.Uint("user_id", userID))
	}
	return secret, key.URL(), nil
}

// Enable confirms enrollment with a first valid code.
func (s *Service) Enable(userID uint, code string) error {
	secret, err := s.secretFor(userID)
	if err != nil {
		return err
	}

	if !totp.Validate(code, secret.Secret) {
		return ErrInvalidCode
	}

	return s.db.Model(secret).Update("enabled", true).Error
}

func (s *Service) Disable(userID uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&TOTPSecret{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove TOTP secret: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSecretNotFound
	}
	return nil
}

// Verify checks a code against the user's enabled secret.
func (s *Service) Verify(userID uint, code string) error {
	if !s.config.TOTP.Enabled {
		return ErrTOTPDisabled
	}

	secret, err := s.secretFor(userID)
	if err != nil {
		return err
	}
	if !secret.Enabled {
		return ErrSecretNotFound
	}

	if !totp.Validate(code, secret.Secret) {
		if s.logger != nil {
			s.logger.Warn("TOTP verification failed", zap.Uint("user_id", userID))
		}
		return ErrInvalidCode
	}
	return nil
}

// IsEnabled reports whether the user has a confirmed secret.
func (s *Service) IsEnabled(userID uint) bool {
	if !s.config.TOTP.Enabled {
		return false
	}
	var count int64
	s.db.Model(&TOTPSecret{}).
		Where("user_id = ? AND enabled = ?", userID, true).
		Count(&count)
	return count > 0
}

func (s *Service) secretFor(userID uint) (*TOTPSecret, error) {
	var secret TOTPSecret
	if err := s.db.Where("user_id = ?", userID).First(&secret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSecretNotFound
		}
		return nil, fmt.Errorf("failed to look up TOTP secret: %w", err)
	}
	return &secret, nil
}
