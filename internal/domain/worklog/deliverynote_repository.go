package worklog

import (
	"context"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
)

// DeliveryNoteRepository defines the persistence contract for delivery notes
type DeliveryNoteRepository interface {
	// FindActiveByID finds an active note by ID
	FindActiveByID(ctx context.Context, id uuid.UUID) (*DeliveryNote, error)

	// FindArchivedByID finds an archived note by ID
	FindArchivedByID(ctx context.Context, id uuid.UUID) (*DeliveryNote, error)

	// FindByID finds a note in any lifecycle state
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryNote, error)

	// ListActiveByOwners lists active notes owned by any of the given users
	ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[DeliveryNote], error)

	// ListArchivedByOwners lists archived notes owned by any of the given users
	ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[DeliveryNote], error)

	// Save creates or updates a note
	Save(ctx context.Context, note *DeliveryNote) error

	// Delete removes a note permanently
	Delete(ctx context.Context, id uuid.UUID) error
}
