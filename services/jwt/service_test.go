package jwt

import (
	"testing"
	"time"

	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	s := NewService(testutils.GetTestConfig(), nil)

	token, err := s.GenerateToken(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	s := NewService(testutils.GetTestConfig(), nil)

	t.Run("garbage token", func(t *testing.T) {
		_, err := s.ValidateToken("not.a.token")
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherCfg := testutils.GetTestConfig()
		otherCfg.JWT.SecretKey = "another-secret-key-32-chars!!!!!"
		other := NewService(otherCfg, nil)

		token, err := other.GenerateToken(1, "x@example.com")
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		testutils.AssertErrorType(t, ErrInvalidToken, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := testutils.GetTestConfig()
		expiredCfg.JWT.AccessExpiry = -time.Minute
		expired := NewService(expiredCfg, nil)

		token, err := expired.GenerateToken(1, "x@example.com")
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		testutils.AssertErrorType(t, ErrExpiredToken, err)
	})
}
