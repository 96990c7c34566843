package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/access"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientService applies ownership, uniqueness and lifecycle rules to clients.
// Every lookup checks existence before ownership: an unknown ID is NotFound,
// an existing resource outside the actor's tenant is Forbidden.
type ClientService struct {
	clients  directory.ClientRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clients directory.ClientRepository, resolver *access.Resolver, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		clients:  clients,
		resolver: resolver,
		logger:   logger,
	}
}

// Create creates a client after checking tenant-scope name uniqueness
func (s *ClientService) Create(ctx context.Context, actorID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	members, err := s.resolver.TenantMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.clients.ExistsActiveByNameForOwners(ctx, name, members, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this name already exists in your company")
	}

	client, err := directory.NewClient(actorID, name, req.TaxID, req.Address.toDomain())
	if err != nil {
		return nil, err
	}
	if req.LogoURL != "" {
		client.SetLogoURL(req.LogoURL)
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("owner_id", actorID.String()),
	)
	return ToClientResponse(client), nil
}

// GetByID returns an active client visible to the actor
func (s *ClientService) GetByID(ctx context.Context, actorID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindActiveByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// GetArchivedByID returns an archived client visible to the actor
func (s *ClientService) GetArchivedByID(ctx context.Context, actorID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindArchivedByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// Update applies a partial update. A rename re-runs the uniqueness check,
// excluding the client itself.
func (s *ClientService) Update(ctx context.Context, actorID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clients.FindActiveByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName != client.Name {
			members, err := s.resolver.TenantMemberIDs(ctx, actorID)
			if err != nil {
				return nil, err
			}
			exists, err := s.clients.ExistsActiveByNameForOwners(ctx, newName, members, client.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this name already exists in your company")
			}
		}
		if err := client.Rename(newName); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		client.SetTaxID(*req.TaxID)
	}
	if req.Address != nil {
		client.SetAddress(req.Address.toDomain())
	}
	if req.LogoURL != nil {
		client.SetLogoURL(*req.LogoURL)
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// List returns active clients across the actor's tenant
func (s *ClientService) List(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	members, err := s.resolver.TenantMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	page, err := s.clients.ListActiveByOwners(ctx, members, filter)
	if err != nil {
		return nil, err
	}
	return toClientResponses(page), nil
}

// ListArchived returns archived clients across the actor's tenant
func (s *ClientService) ListArchived(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	members, err := s.resolver.TenantMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	page, err := s.clients.ListArchivedByOwners(ctx, members, filter)
	if err != nil {
		return nil, err
	}
	return toClientResponses(page), nil
}

// Archive soft-deletes an active client. An already-archived client is not
// found in the active set.
func (s *ClientService) Archive(ctx context.Context, actorID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindActiveByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return nil, err
	}
	if err := client.Archive(); err != nil {
		return nil, err
	}
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// Restore brings an archived client back to the active state. The lookup
// runs only against the archived set.
func (s *ClientService) Restore(ctx context.Context, actorID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindArchivedByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return nil, err
	}
	if err := client.Restore(); err != nil {
		return nil, err
	}
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// Purge removes a client permanently from either lifecycle state
func (s *ClientService) Purge(ctx context.Context, actorID, clientID uuid.UUID) error {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, clientID); err != nil {
		return err
	}

	s.logger.Info("Client purged",
		zap.String("client_id", clientID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *ClientService) authorize(ctx context.Context, actorID, ownerID uuid.UUID) error {
	decision, err := s.resolver.Resolve(ctx, actorID, ownerID)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return shared.ErrForbidden
	}
	return nil
}
