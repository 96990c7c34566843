package identity

import (
	"strings"

	"github.com/worklog/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	// UserStatusActive indicates a usable account
	UserStatusActive UserStatus = "active"
	// UserStatusDisabled indicates a deactivated account
	UserStatusDisabled UserStatus = "disabled"
)

// IsValid checks if the user status is valid
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusDisabled
}

// bcryptCost is the cost factor for password hashing
const bcryptCost = 12

// Company is the company affiliation of a user. All users declaring the same
// CIF form one tenant: they share visibility and uniqueness scopes.
type Company struct {
	Name     string `json:"name"`
	CIF      string `json:"cif"`
	Street   string `json:"street"`
	Number   int    `json:"number"`
	Postal   int    `json:"postal"`
	City     string `json:"city"`
	Province string `json:"province"`
}

// User is the identity aggregate root
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	NIF          string
	Status       UserStatus
	Company      *Company
}

// NewUser creates a new user with a hashed password
func NewUser(email, password, name, surname string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		Name:              strings.TrimSpace(name),
		Surname:           strings.TrimSpace(surname),
		Status:            UserStatusActive,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// UpdateProfile updates the user's personal data
func (u *User) UpdateProfile(name, surname, nif string) {
	u.Name = strings.TrimSpace(name)
	u.Surname = strings.TrimSpace(surname)
	u.NIF = strings.TrimSpace(nif)
	u.Touch()
}

// TenantCIF returns the user's tenant identifier, empty when the user has no
// company affiliation
func (u *User) TenantCIF() string {
	if u.Company == nil {
		return ""
	}
	return u.Company.CIF
}

// SetCompany declares the user's company affiliation. The CIF binds the user
// to a tenant and is not reassignable: once set, only the company metadata for
// the same CIF may change.
func (u *User) SetCompany(c Company) error {
	c.CIF = strings.ToUpper(strings.TrimSpace(c.CIF))
	c.Name = strings.TrimSpace(c.Name)
	if c.CIF == "" {
		return shared.NewDomainError("INVALID_INPUT", "Company CIF is required")
	}
	if c.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	if u.Company != nil && u.Company.CIF != c.CIF {
		return shared.NewDomainError("INVALID_STATE", "Company CIF cannot be reassigned")
	}
	u.Company = &c
	u.Touch()
	return nil
}

// Disable deactivates the account
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.ErrInvalidState
	}
	u.Status = UserStatusDisabled
	u.Touch()
	return nil
}

// IsActive reports whether the account can authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_INPUT", "Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	return nil
}
