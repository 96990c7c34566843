package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages user profiles and company affiliation
type UserService struct {
	users     identity.UserRepository
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.UserRepository, blacklist auth.TokenBlacklist, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:     users,
		blacklist: blacklist,
		logger:    logger,
	}
}

// GetByID returns the user profile
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdateProfile applies a partial update to the user's personal data
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	surname := user.Surname
	nif := user.NIF
	if req.Name != nil {
		name = *req.Name
	}
	if req.Surname != nil {
		surname = *req.Surname
	}
	if req.NIF != nil {
		nif = *req.NIF
	}
	user.UpdateProfile(name, surname, nif)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// SetCompany declares the user's company. A CIF already claimed by a
// different user is a conflict; the company metadata is not compared.
func (s *UserService) SetCompany(ctx context.Context, userID uuid.UUID, req CompanyRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cif := strings.ToUpper(strings.TrimSpace(req.CIF))
	taken, err := s.users.ExistsByCompanyCIF(ctx, cif, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Company CIF is already claimed by another user")
	}

	if err := user.SetCompany(identity.Company{
		Name:     req.Name,
		CIF:      cif,
		Street:   req.Street,
		Number:   req.Number,
		Postal:   req.Postal,
		City:     req.City,
		Province: req.Province,
	}); err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Company affiliation set",
		zap.String("user_id", userID.String()),
		zap.String("cif", cif),
	)
	return ToUserResponse(user), nil
}

// DeleteAccount removes the user permanently and invalidates all of its
// outstanding tokens
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	if s.blacklist != nil {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), 30*24*time.Hour); err != nil {
			s.logger.Warn("Failed to invalidate tokens for deleted user",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("User account deleted", zap.String("user_id", userID.String()))
	return nil
}
