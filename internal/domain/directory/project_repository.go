package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
)

// ProjectRepository defines the persistence contract for projects, with the
// same state-scoped lookup rules as ClientRepository.
type ProjectRepository interface {
	// FindActiveByID finds an active project by ID
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindArchivedByID finds an archived project by ID
	FindArchivedByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindByID finds a project in any lifecycle state
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// ListActiveByOwners lists active projects owned by any of the given users
	ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[Project], error)

	// ListArchivedByOwners lists archived projects owned by any of the given users
	ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[Project], error)

	// ExistsActiveByNameOrCodeForOwners checks whether an active project owned
	// by any of the given users matches the name on the name field or the
	// project code on the project code field, excluding excludeID. The two
	// fields are evaluated independently: a name equal to another project's
	// code is not a match.
	ExistsActiveByNameOrCodeForOwners(ctx context.Context, name, projectCode string, ownerIDs []uuid.UUID, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a project
	Save(ctx context.Context, project *Project) error

	// Delete removes a project permanently, regardless of lifecycle state
	Delete(ctx context.Context, id uuid.UUID) error
}
