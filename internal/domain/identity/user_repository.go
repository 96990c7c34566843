package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email address
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByCompanyCIF returns all users affiliated with the given company CIF
	FindByCompanyCIF(ctx context.Context, cif string) ([]*User, error)

	// ExistsByEmail checks if a user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByCompanyCIF checks if any user other than excludeUserID has
	// claimed the given company CIF
	ExistsByCompanyCIF(ctx context.Context, cif string, excludeUserID uuid.UUID) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete removes a user permanently
	Delete(ctx context.Context, id uuid.UUID) error
}
