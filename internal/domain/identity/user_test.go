package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser("jane@example.com", "secret-password", "Jane", "Doe")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "Jane", user.Name)
		assert.Equal(t, "Doe", user.Surname)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Nil(t, user.Company)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "secret-password", user.PasswordHash)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("  Jane@Example.COM ", "secret-password", "Jane", "Doe")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("trims name and surname", func(t *testing.T) {
		user, err := NewUser("jane@example.com", "secret-password", "  Jane ", " Doe ")
		require.NoError(t, err)
		assert.Equal(t, "Jane", user.Name)
		assert.Equal(t, "Doe", user.Surname)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret-password", "Jane", "Doe")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "short", "Jane", "Doe")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("jane@example.com", "secret-password", "Jane", "Doe")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("secret-password"))
	assert.False(t, user.VerifyPassword("wrong-password"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("jane@example.com", "secret-password", "Jane", "Doe")
	require.NoError(t, err)

	t.Run("replaces the hash", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("another-password"))
		assert.True(t, user.VerifyPassword("another-password"))
		assert.False(t, user.VerifyPassword("secret-password"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		err := user.ChangePassword("short")
		require.Error(t, err)
		assert.True(t, user.VerifyPassword("another-password"))
	})
}

func TestUserSetCompany(t *testing.T) {
	newTestUser := func(t *testing.T) *User {
		t.Helper()
		user, err := NewUser("jane@example.com", "secret-password", "Jane", "Doe")
		require.NoError(t, err)
		return user
	}

	t.Run("sets company and normalizes CIF", func(t *testing.T) {
		user := newTestUser(t)
		err := user.SetCompany(Company{Name: " Acme SL ", CIF: " b12345678 "})
		require.NoError(t, err)
		require.NotNil(t, user.Company)
		assert.Equal(t, "B12345678", user.Company.CIF)
		assert.Equal(t, "Acme SL", user.Company.Name)
		assert.Equal(t, "B12345678", user.TenantCIF())
	})

	t.Run("fails without CIF", func(t *testing.T) {
		user := newTestUser(t)
		err := user.SetCompany(Company{Name: "Acme SL"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("fails without name", func(t *testing.T) {
		user := newTestUser(t)
		err := user.SetCompany(Company{CIF: "B12345678"})
		require.Error(t, err)
	})

	t.Run("rejects reassigning to a different CIF", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, user.SetCompany(Company{Name: "Acme SL", CIF: "B12345678"}))

		err := user.SetCompany(Company{Name: "Other SA", CIF: "A87654321"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, "B12345678", user.Company.CIF)
	})

	t.Run("allows updating metadata for the same CIF", func(t *testing.T) {
		user := newTestUser(t)
		require.NoError(t, user.SetCompany(Company{Name: "Acme SL", CIF: "B12345678"}))

		err := user.SetCompany(Company{Name: "Acme Sociedad Limitada", CIF: "b12345678", City: "Madrid"})
		require.NoError(t, err)
		assert.Equal(t, "Acme Sociedad Limitada", user.Company.Name)
		assert.Equal(t, "Madrid", user.Company.City)
		assert.Equal(t, "B12345678", user.Company.CIF)
	})
}

func TestUserTenantCIF(t *testing.T) {
	user, err := NewUser("jane@example.com", "secret-password", "Jane", "Doe")
	require.NoError(t, err)
	assert.Empty(t, user.TenantCIF())
}

func TestUserDisable(t *testing.T) {
	user, err := NewUser("jane@example.com", "secret-password", "Jane", "Doe")
	require.NoError(t, err)

	assert.True(t, user.IsActive())
	require.NoError(t, user.Disable())
	assert.False(t, user.IsActive())

	err = user.Disable()
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}
