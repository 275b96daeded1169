package testutils

import (
	"time"

	"github.com/streamify/streamify/config"
	"golang.org/x/crypto/bcrypt"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "Streamify Test",
			URL:  "http://localhost:8080",
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
		Session: config.SessionConfig{
			Name:     "test_session",
			Store:    "memory",
			MaxAge:   time.Hour,
			Path:     "/",
			HttpOnly: true,
			SameSite: "lax",
		},
		Auth: config.AuthConfig{
			MinLength:     8,
			RequireUpper:  true,
			RequireLower:  true,
			RequireNumber: true,
			BcryptCost:    bcrypt.MinCost,
		},
		OTP: config.OTPConfig{
			Expiry:          5 * time.Minute,
			Retention:       24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		TOTP: config.TOTPConfig{
			Enabled: true,
			Issuer:  "Streamify Test",
		},
		JWT: config.JWTConfig{
			SecretKey:    "test-secret-key-32-chars-long!!",
			Issuer:       "test-issuer",
			AccessExpiry: 15 * time.Minute,
		},
		Media: config.MediaConfig{
			Root: "media",
		},
		RateLimit: config.RateLimitConfig{
			Enabled: false,
		},
		Subscription: config.SubscriptionConfig{
			ExpireEnabled:  false,
			ExpireInterval: time.Hour,
		},
	}
}

var TestPasswords = struct {
	Valid    string
	TooShort string
	NoUpper  string
	NoNumber string
}{
	Valid:    "Password123",
	TooShort: "Pass1",
	NoUpper:  "password123",
	NoNumber: "PasswordABC",
}
