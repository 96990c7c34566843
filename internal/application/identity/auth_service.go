package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, authentication and session revocation
type AuthService struct {
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users identity.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:     users,
		jwt:       jwtService,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Register creates a new user account. Email addresses are unique.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewUser(email, req.Password, req.Name, req.Surname)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return ToUserResponse(user), nil
}

// Login authenticates a user and issues a token pair. Unknown accounts and
// wrong passwords produce the same outcome.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}
	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")
	}

	tokens, err := s.jwt.GenerateTokenPair(user.ID.String(), user.Email, user.TenantCIF())
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &LoginResponse{User: ToUserResponse(user), Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	if s.blacklist != nil && claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err == nil && revoked {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
		}
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}

	return s.jwt.GenerateTokenPair(user.ID.String(), user.Email, user.TenantCIF())
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return err
	}
	return nil
}
