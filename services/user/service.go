package user

import (
	"errors"
	"fmt"

	"github.com/streamify/streamify/services/auth"
	"github.com/streamify/streamify/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	db     *gorm.DB
	auth   *auth.Service
	logger *logging.Service
}

func NewService(db *gorm.DB, authSvc *auth.Service, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		auth:   authSvc,
		logger: logger,
	}
}

// Register creates an inactive account. The account stays inactive
// until the first OTP verification succeeds.
func (s *Service) Register(name, email, password string) (*User, error) {
	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if count > 0 {
		if s.logger != nil {
			s.logger.Warn("registration attempted with taken email", zap.String("email", email))
		}
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     RoleUser,
		Active:   false,
	}

	if err := s.db.Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user registered", zap.Uint("user_id", u.ID), zap.String("email", email))
	}
	return u, nil
}

// Authenticate checks credentials. It reports the same error for an
// unknown email and a wrong password so callers cannot enumerate
// accounts. Inactive users authenticate too; they are activated by
// their first successful OTP verification.
func (s *Service) Authenticate(email, password string) (*User, error) {
	var u User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.auth.VerifyPassword(u.Password, password); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed login attempt", zap.String("email", email))
		}
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

func (s *Service) GetByID(id uint) (*User, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &u, nil
}

// Activate flips the active flag. It is a no-op for already active
// accounts so the flag only ever transitions false -> true once.
func (s *Service) Activate(id uint) error {
	result := s.db.Model(&User{}).
		Where("id = ? AND active = ?", id, false).
		Update("active", true)
	if result.Error != nil {
		return fmt.Errorf("failed to activate user: %w", result.Error)
	}

	if s.logger != nil && result.RowsAffected > 0 {
		s.logger.Info("user activated", zap.Uint("user_id", id))
	}
	return nil
}

func (s *Service) UpdateProfile(id uint, name, bio, profilePicture string) error {
	return s.db.Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"name":            name,
		"bio":             bio,
		"profile_picture": profilePicture,
	}).Error
}

func (s *Service) ChangePassword(id uint, currentPassword, newPassword string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.auth.VerifyPassword(u.Password, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(&User{}).Where("id = ?", id).Update("password", hash).Error
}

func (s *Service) PromoteToCreator(id uint) error {
	return s.db.Model(&User{}).Where("id = ?", id).Update("role", RoleCreator).Error
}
