package user

import (
	"testing"

	"github.com/streamify/streamify/services/auth"
	"github.com/streamify/streamify/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	cfg := testutils.GetTestConfig()
	db := testutils.SetupTestDB(t, &User{})
	return NewService(db, auth.NewService(cfg, nil), nil)
}

func TestService_Register(t *testing.T) {
	t.Run("creates an inactive user", func(t *testing.T) {
		s := newTestService(t)

		u, err := s.Register("Alice", "alice@example.com", testutils.TestPasswords.Valid)
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.False(t, u.Active)
		assert.Equal(t, RoleUser, u.Role)
		assert.NotEqual(t, testutils.TestPasswords.Valid, u.Password)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		s := newTestService(t)

		_, err := s.Register("Alice", "alice@example.com", testutils.TestPasswords.Valid)
		require.NoError(t, err)

		_, err = s.Register("Imposter", "alice@example.com", testutils.TestPasswords.Valid)
		testutils.AssertErrorType(t, ErrEmailTaken, err)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		s := newTestService(t)

		_, err := s.Register("Alice", "alice@example.com", testutils.TestPasswords.TooShort)
		assert.Error(t, err)
	})
}

func TestService_Authenticate(t *testing.T) {
	s := newTestService(t)
	_, err := s.Register("Alice", "alice@example.com", testutils.TestPasswords.Valid)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := s.Authenticate("alice@example.com", testutils.TestPasswords.Valid)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("inactive users authenticate too", func(t *testing.T) {
		u, err := s.Authenticate("alice@example.com", testutils.TestPasswords.Valid)
		require.NoError(t, err)
		assert.False(t, u.Active)
	})

	t.Run("wrong password and unknown email return the same error", func(t *testing.T) {
		_, wrongPassword := s.Authenticate("alice@example.com", "Nope12345")
		_, unknownEmail := s.Authenticate("nobody@example.com", testutils.TestPasswords.Valid)

		testutils.AssertErrorType(t, ErrInvalidCredentials, wrongPassword)
		testutils.AssertErrorType(t, ErrInvalidCredentials, unknownEmail)
	})
}

func TestService_Activate(t *testing.T) {
	s := newTestService(t)
	u, err := s.Register("Alice", "alice@example.com", testutils.TestPasswords.Valid)
	require.NoError(t, err)

	require.NoError(t, s.Activate(u.ID))

	got, err := s.GetByID(u.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	// A second call is a no-op, not an error.
	require.NoError(t, s.Activate(u.ID))
}

func TestService_ChangePassword(t *testing.T) {
	s := newTestService(t)
	u, err := s.Register("Alice", "alice@example.com", testutils.TestPasswords.Valid)
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := s.ChangePassword(u.ID, "Wrong12345", "NewPassword1")
		testutils.AssertErrorType(t, ErrInvalidCredentials, err)
	})

	t.Run("successful change", func(t *testing.T) {
		require.NoError(t, s.ChangePassword(u.ID, testutils.TestPasswords.Valid, "NewPassword1"))

		_, err := s.Authenticate("alice@example.com", "NewPassword1")
		assert.NoError(t, err)

		_, err = s.Authenticate("alice@example.com", testutils.TestPasswords.Valid)
		assert.Error(t, err)
	})
}

func TestUser_Roles(t *testing.T) {
	regular := &User{Role: RoleUser}
	creator := &User{Role: RoleCreator}
	admin := &User{Role: RoleAdmin}
	staff := &User{Role: RoleUser, Staff: true}

	assert.False(t, regular.IsCreator())
	assert.True(t, creator.IsCreator())
	assert.True(t, admin.IsCreator())
	assert.True(t, admin.IsAdmin())
	assert.True(t, staff.IsAdmin())
	assert.False(t, regular.IsAdmin())
}
