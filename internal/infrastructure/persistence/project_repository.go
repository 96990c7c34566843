package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindActiveByID finds an active project by ID
func (r *GormProjectRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	return r.findByIDInState(ctx, id, shared.LifecycleActive)
}

// FindArchivedByID finds an archived project by ID
func (r *GormProjectRepository) FindArchivedByID(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	return r.findByIDInState(ctx, id, shared.LifecycleArchived)
}

// FindByID finds a project in any lifecycle state
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormProjectRepository) findByIDInState(ctx context.Context, id uuid.UUID, state shared.LifecycleState) (*directory.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND state = ?", id, state).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActiveByOwners lists active projects owned by any of the given users
func (r *GormProjectRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Project], error) {
	return r.listByOwnersInState(ctx, ownerIDs, shared.LifecycleActive, filter)
}

// ListArchivedByOwners lists archived projects owned by any of the given users
func (r *GormProjectRepository) ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Project], error) {
	return r.listByOwnersInState(ctx, ownerIDs, shared.LifecycleArchived, filter)
}

func (r *GormProjectRepository) listByOwnersInState(ctx context.Context, ownerIDs []uuid.UUID, state shared.LifecycleState, filter shared.Filter) (*shared.Paginated[directory.Project], error) {
	if len(ownerIDs) == 0 {
		result := shared.NewPaginated([]directory.Project{}, 0, filter.Page, filter.PageSize)
		return &result, nil
	}

	base := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("owner_user_id IN ? AND state = ?", ownerIDs, state)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR project_code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var projectModels []models.ProjectModel
	if err := applyFilter(base, filter, "name ASC").Find(&projectModels).Error; err != nil {
		return nil, err
	}

	projects := make([]directory.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = *projectModels[i].ToDomain()
	}
	result := shared.NewPaginated(projects, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ExistsActiveByNameOrCodeForOwners checks whether an active project owned by
// any of the given users matches the name or the project code on their own
// fields, excluding excludeID
func (r *GormProjectRepository) ExistsActiveByNameOrCodeForOwners(ctx context.Context, name, projectCode string, ownerIDs []uuid.UUID, excludeID uuid.UUID) (bool, error) {
	if len(ownerIDs) == 0 {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("(name = ? OR project_code = ?)", name, projectCode).
		Where("owner_user_id IN ? AND state = ?", ownerIDs, shared.LifecycleActive)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, project *directory.Project) error {
	var model models.ProjectModel
	model.FromDomain(project)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a project permanently, regardless of lifecycle state
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProjectRepository implements ProjectRepository
var _ directory.ProjectRepository = (*GormProjectRepository)(nil)
