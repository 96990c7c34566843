package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/infrastructure/auth"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByCompanyCIF(ctx context.Context, cif string) ([]*identity.User, error) {
	args := m.Called(ctx, cif)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByCompanyCIF(ctx context.Context, cif string, excludeUserID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cif, excludeUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTokenBlacklist struct {
	mock.Mock
}

func (m *mockTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *mockTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	args := m.Called(ctx, userID, ttl)
	return args.Error(0)
}

func (m *mockTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, tokenIssuedAt)
	return args.Bool(0), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		Secret:          "test-secret-at-least-32-characters-long",
		Issuer:          "worklog-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func registeredUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, password, "Jane", "Doe")
	require.NoError(t, err)
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("ExistsByEmail", ctx, "jane@example.com").Return(false, nil)
		users.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		svc := NewAuthService(users, newTestJWTService(), nil, nil)
		resp, err := svc.Register(ctx, RegisterRequest{
			Email: " Jane@Example.com ", Password: "secret-password", Name: "Jane", Surname: "Doe",
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Equal(t, "active", resp.Status)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("ExistsByEmail", ctx, "jane@example.com").Return(true, nil)

		svc := NewAuthService(users, newTestJWTService(), nil, nil)
		_, err := svc.Register(ctx, RegisterRequest{
			Email: "jane@example.com", Password: "secret-password", Name: "Jane",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")
		users := new(mockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		svc := NewAuthService(users, newTestJWTService(), nil, nil)
		resp, err := svc.Login(ctx, LoginRequest{Email: "Jane@Example.com", Password: "secret-password"})
		require.NoError(t, err)
		require.NotNil(t, resp.Tokens)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, "Bearer", resp.Tokens.TokenType)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("access token carries the tenant CIF", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")
		require.NoError(t, user.SetCompany(identity.Company{Name: "Acme SL", CIF: "B12345678"}))

		users := new(mockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		jwtService := newTestJWTService()
		svc := NewAuthService(users, jwtService, nil, nil)
		resp, err := svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "secret-password"})
		require.NoError(t, err)

		claims, err := jwtService.ValidateAccessToken(resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "B12345678", claims.TenantCIF)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("unknown account and wrong password are indistinguishable", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")

		unknown := new(mockUserRepository)
		unknown.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		wrongPass := new(mockUserRepository)
		wrongPass.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		svc1 := NewAuthService(unknown, newTestJWTService(), nil, nil)
		_, err1 := svc1.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever-pass"})

		svc2 := NewAuthService(wrongPass, newTestJWTService(), nil, nil)
		_, err2 := svc2.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "wrong-password"})

		require.Error(t, err1)
		require.Error(t, err2)
		assert.Equal(t, err1.Error(), err2.Error())
	})

	t.Run("disabled account cannot log in", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")
		require.NoError(t, user.Disable())

		users := new(mockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		svc := NewAuthService(users, newTestJWTService(), nil, nil)
		_, err := svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "secret-password"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")
		jwtService := newTestJWTService()
		pair, err := jwtService.GenerateTokenPair(user.ID.String(), user.Email, "")
		require.NoError(t, err)

		users := new(mockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(user, nil)

		svc := NewAuthService(users, jwtService, nil, nil)
		fresh, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, fresh.AccessToken)
	})

	t.Run("an access token is not accepted as refresh token", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")
		jwtService := newTestJWTService()
		pair, err := jwtService.GenerateTokenPair(user.ID.String(), user.Email, "")
		require.NoError(t, err)

		svc := NewAuthService(new(mockUserRepository), jwtService, nil, nil)
		_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.AccessToken})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		user := registeredUser(t, "jane@example.com", "secret-password")
		jwtService := newTestJWTService()
		pair, err := jwtService.GenerateTokenPair(user.ID.String(), user.Email, "")
		require.NoError(t, err)

		blacklist := new(mockTokenBlacklist)
		blacklist.On("IsBlacklisted", ctx, mock.AnythingOfType("string")).Return(true, nil)

		svc := NewAuthService(new(mockUserRepository), jwtService, blacklist, nil)
		_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		require.Error(t, err)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the token for its remaining lifetime", func(t *testing.T) {
		blacklist := new(mockTokenBlacklist)
		blacklist.On("AddToBlacklist", ctx, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 0 && ttl <= 15*time.Minute
		})).Return(nil)

		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			},
		}

		svc := NewAuthService(new(mockUserRepository), newTestJWTService(), blacklist, nil)
		require.NoError(t, svc.Logout(ctx, claims))
		blacklist.AssertExpectations(t)
	})

	t.Run("expired token needs no blacklisting", func(t *testing.T) {
		blacklist := new(mockTokenBlacklist)
		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}

		svc := NewAuthService(new(mockUserRepository), newTestJWTService(), blacklist, nil)
		require.NoError(t, svc.Logout(ctx, claims))
		blacklist.AssertNotCalled(t, "AddToBlacklist", mock.Anything, mock.Anything, mock.Anything)
	})
}
