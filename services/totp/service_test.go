package totp

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Enroll(t *testing.T) {
	t.Run("disabled by config", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.TOTP.Enabled = false
		db := testutils.SetupTestDB(t, &TOTPSecret{})
		s := NewService(cfg, db, nil)

		_, _, err := s.Enroll(1, "alice@example.com")
		testutils.AssertErrorType(t, ErrTOTPDisabled, err)
	})

	t.Run("generates a disabled secret with a provisioning URL", func(t *testing.T) {
		db := testutils.SetupTestDB(t, &TOTPSecret{})
		s := NewService(testutils.GetTestConfig(), db, nil)

		secret, url, err := s.Enroll(1, "alice@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, secret.Secret)
		assert.False(t, secret.Enabled)
		assert.Contains(t, url, "otpauth://totp/")
		assert.Contains(t, url, "alice@example.com")
	})

	t.Run("one secret per user", func(t *testing.T) {
		db := testutils.SetupTestDB(t, &TOTPSecret{})
		s := NewService(testutils.GetTestConfig(), db, nil)

		_, _, err := s.Enroll(1, "alice@example.com")
		require.NoError(t, err)

		_, _, err = s.Enroll(1, "alice@example.com")
		testutils.AssertErrorType(t, ErrSecretExists, err)
	})
}

func TestService_EnableAndVerify(t *testing.T) {
	db := testutils.SetupTestDB(t, &TOTPSecret{})
	s := NewService(testutils.GetTestConfig(), db, nil)

	secret, _, err := s.Enroll(1, "alice@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret.Secret, time.Now())
	require.NoError(t, err)

	t.Run("verify fails before enable", func(t *testing.T) {
		err := s.Verify(1, code)
		testutils.AssertErrorType(t, ErrSecretNotFound, err)
	})

	t.Run("enable rejects a wrong code", func(t *testing.T) {
		err := s.Enable(1, "000000")
		testutils.AssertErrorType(t, ErrInvalidCode, err)
	})

	t.Run("enable then verify", func(t *testing.T) {
		require.NoError(t, s.Enable(1, code))
		assert.True(t, s.IsEnabled(1))

		fresh, err := totp.GenerateCode(secret.Secret, time.Now())
		require.NoError(t, err)
		assert.NoError(t, s.Verify(1, fresh))

		err = s.Verify(1, "000000")
		testutils.AssertErrorType(t, ErrInvalidCode, err)
	})
}

func TestService_Disable(t *testing.T) {
	db := testutils.SetupTestDB(t, &TOTPSecret{})
	s := NewService(testutils.GetTestConfig(), db, nil)

	err := s.Disable(1)
	testutils.AssertErrorType(t, ErrSecretNotFound, err)

	secret, _, err := s.Enroll(1, "alice@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Enable(1, code))

	require.NoError(t, s.Disable(1))
	assert.False(t, s.IsEnabled(1))
}
