package identity

import (
	"time"

	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/infrastructure/auth"
)

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest is the payload for personal data updates.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	NIF     *string `json:"nif"`
}

// CompanyRequest declares or updates the user's company affiliation
type CompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	CIF      string `json:"cif" binding:"required,cif"`
	Street   string `json:"street"`
	Number   int    `json:"number"`
	Postal   int    `json:"postal"`
	City     string `json:"city"`
	Province string `json:"province"`
}

// UserResponse is the outward representation of a user
type UserResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Surname   string            `json:"surname"`
	NIF       string            `json:"nif,omitempty"`
	Status    string            `json:"status"`
	Company   *identity.Company `json:"company,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// LoginResponse bundles the authenticated user with its token pair
type LoginResponse struct {
	User   *UserResponse   `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a user aggregate to its response DTO
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Surname:   u.Surname,
		NIF:       u.NIF,
		Status:    string(u.Status),
		Company:   u.Company,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
