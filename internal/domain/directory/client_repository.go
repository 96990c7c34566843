package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
)

// ClientRepository defines the persistence contract for clients.
// Lookups are state-scoped: an archived client is "not found" for active
// lookups and vice versa. Owner-set queries implement tenant-wide visibility.
type ClientRepository interface {
	// FindActiveByID finds an active client by ID
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindArchivedByID finds an archived client by ID
	FindArchivedByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByID finds a client in any lifecycle state
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// ListActiveByOwners lists active clients owned by any of the given users
	ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[Client], error)

	// ListArchivedByOwners lists archived clients owned by any of the given users
	ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[Client], error)

	// ExistsActiveByNameForOwners checks whether an active client with the
	// given name is owned by any of the given users, excluding excludeID
	ExistsActiveByNameForOwners(ctx context.Context, name string, ownerIDs []uuid.UUID, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete removes a client permanently, regardless of lifecycle state
	Delete(ctx context.Context, id uuid.UUID) error
}
