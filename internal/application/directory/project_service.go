package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/access"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// dateLayout is the wire format for project begin/end dates
const dateLayout = "2006-01-02"

// ProjectService applies ownership, uniqueness and lifecycle rules to
// projects. Name and project code are each unique within the tenant scope;
// a collision on either field alone is a conflict.
type ProjectService struct {
	projects directory.ProjectRepository
	clients  directory.ClientRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projects directory.ProjectRepository, clients directory.ClientRepository, resolver *access.Resolver, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projects: projects,
		clients:  clients,
		resolver: resolver,
		logger:   logger,
	}
}

// Create creates a project for an existing, visible client after checking
// name/code uniqueness within the tenant scope
func (s *ProjectService) Create(ctx context.Context, actorID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid client ID")
	}

	client, err := s.clients.FindActiveByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, client.OwnerUserID); err != nil {
		return nil, err
	}

	members, err := s.resolver.TenantMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.ProjectCode)
	exists, err := s.projects.ExistsActiveByNameOrCodeForOwners(ctx, name, code, members, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A project with this name or code already exists in your company")
	}

	project, err := directory.NewProject(actorID, clientID, name, code)
	if err != nil {
		return nil, err
	}
	if req.Code != "" {
		project.SetInternalCode(req.Code)
	}
	if req.Notes != "" {
		project.SetNotes(req.Notes)
	}
	begin, end, err := parsePeriod(req.Begin, req.End)
	if err != nil {
		return nil, err
	}
	if begin != nil || end != nil {
		if err := project.SetPeriod(begin, end); err != nil {
			return nil, err
		}
	}
	if len(req.ServicePrices) > 0 {
		if err := project.SetServicePrices(toServicePrices(req.ServicePrices)); err != nil {
			return nil, err
		}
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", actorID.String()),
	)
	return ToProjectResponse(project), nil
}

// GetByID returns an active project visible to the actor
func (s *ProjectService) GetByID(ctx context.Context, actorID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindActiveByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, project.OwnerUserID); err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

// GetArchivedByID returns an archived project visible to the actor
func (s *ProjectService) GetArchivedByID(ctx context.Context, actorID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindArchivedByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, project.OwnerUserID); err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

// Update applies a partial update. Changing the name or project code re-runs
// the uniqueness check with the project itself excluded.
func (s *ProjectService) Update(ctx context.Context, actorID, projectID uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	project, err := s.projects.FindActiveByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, project.OwnerUserID); err != nil {
		return nil, err
	}

	newName := project.Name
	newCode := project.ProjectCode
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
	}
	if req.ProjectCode != nil {
		newCode = strings.TrimSpace(*req.ProjectCode)
	}
	if newName != project.Name || newCode != project.ProjectCode {
		members, err := s.resolver.TenantMemberIDs(ctx, actorID)
		if err != nil {
			return nil, err
		}
		exists, err := s.projects.ExistsActiveByNameOrCodeForOwners(ctx, newName, newCode, members, project.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A project with this name or code already exists in your company")
		}
	}

	if req.Name != nil {
		if err := project.Rename(newName); err != nil {
			return nil, err
		}
	}
	if req.ProjectCode != nil {
		if err := project.SetProjectCode(newCode); err != nil {
			return nil, err
		}
	}
	if req.Code != nil {
		project.SetInternalCode(*req.Code)
	}
	if req.Notes != nil {
		project.SetNotes(*req.Notes)
	}
	if req.Begin != nil || req.End != nil {
		begin := project.Begin
		end := project.End
		if req.Begin != nil {
			begin, err = parseDate(*req.Begin)
			if err != nil {
				return nil, err
			}
		}
		if req.End != nil {
			end, err = parseDate(*req.End)
			if err != nil {
				return nil, err
			}
		}
		if err := project.SetPeriod(begin, end); err != nil {
			return nil, err
		}
	}
	if req.ServicePrices != nil {
		if err := project.SetServicePrices(toServicePrices(*req.ServicePrices)); err != nil {
			return nil, err
		}
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

// List returns active projects across the actor's tenant
func (s *ProjectService) List(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProjectResponse], error) {
	members, err := s.resolver.TenantMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	page, err := s.projects.ListActiveByOwners(ctx, members, filter)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(page), nil
}

// ListArchived returns archived projects across the actor's tenant
func (s *ProjectService) ListArchived(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProjectResponse], error) {
	members, err := s.resolver.TenantMemberIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	page, err := s.projects.ListArchivedByOwners(ctx, members, filter)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(page), nil
}

// Archive soft-deletes an active project
func (s *ProjectService) Archive(ctx context.Context, actorID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindActiveByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, project.OwnerUserID); err != nil {
		return nil, err
	}
	if err := project.Archive(); err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

// Restore brings an archived project back to the active state
func (s *ProjectService) Restore(ctx context.Context, actorID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindArchivedByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, project.OwnerUserID); err != nil {
		return nil, err
	}
	if err := project.Restore(); err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return ToProjectResponse(project), nil
}

// Purge removes a project permanently from either lifecycle state
func (s *ProjectService) Purge(ctx context.Context, actorID, projectID uuid.UUID) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, project.OwnerUserID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("Project purged",
		zap.String("project_id", projectID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

func (s *ProjectService) authorize(ctx context.Context, actorID, ownerID uuid.UUID) error {
	decision, err := s.resolver.Resolve(ctx, actorID, ownerID)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return shared.ErrForbidden
	}
	return nil
}

func toServicePrices(payloads []ServicePricePayload) []directory.ServicePrice {
	prices := make([]directory.ServicePrice, 0, len(payloads))
	for _, p := range payloads {
		prices = append(prices, directory.ServicePrice{ServiceName: p.ServiceName, UnitPrice: p.UnitPrice})
	}
	return prices
}

func parsePeriod(begin, end string) (*time.Time, *time.Time, error) {
	b, err := parseDate(begin)
	if err != nil {
		return nil, nil, err
	}
	e, err := parseDate(end)
	if err != nil {
		return nil, nil, err
	}
	return b, e, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid date, expected YYYY-MM-DD")
	}
	return &t, nil
}
