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

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindActiveByID finds an active client by ID
func (r *GormClientRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	return r.findByIDInState(ctx, id, shared.LifecycleActive)
}

// FindArchivedByID finds an archived client by ID
func (r *GormClientRepository) FindArchivedByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	return r.findByIDInState(ctx, id, shared.LifecycleArchived)
}

// FindByID finds a client in any lifecycle state
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormClientRepository) findByIDInState(ctx context.Context, id uuid.UUID, state shared.LifecycleState) (*directory.Client, error) {
	var model models.ClientModel
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

// ListActiveByOwners lists active clients owned by any of the given users
func (r *GormClientRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Client], error) {
	return r.listByOwnersInState(ctx, ownerIDs, shared.LifecycleActive, filter)
}

// ListArchivedByOwners lists archived clients owned by any of the given users
func (r *GormClientRepository) ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Client], error) {
	return r.listByOwnersInState(ctx, ownerIDs, shared.LifecycleArchived, filter)
}

func (r *GormClientRepository) listByOwnersInState(ctx context.Context, ownerIDs []uuid.UUID, state shared.LifecycleState, filter shared.Filter) (*shared.Paginated[directory.Client], error) {
	if len(ownerIDs) == 0 {
		result := shared.NewPaginated([]directory.Client{}, 0, filter.Page, filter.PageSize)
		return &result, nil
	}

	base := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("owner_user_id IN ? AND state = ?", ownerIDs, state)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ? OR tax_id ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var clientModels []models.ClientModel
	if err := applyFilter(base, filter, "name ASC").Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]directory.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = *clientModels[i].ToDomain()
	}
	result := shared.NewPaginated(clients, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ExistsActiveByNameForOwners checks whether an active client with the given
// name is owned by any of the given users, excluding excludeID
func (r *GormClientRepository) ExistsActiveByNameForOwners(ctx context.Context, name string, ownerIDs []uuid.UUID, excludeID uuid.UUID) (bool, error) {
	if len(ownerIDs) == 0 {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("name = ? AND owner_user_id IN ? AND state = ?", name, ownerIDs, shared.LifecycleActive)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *directory.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a client permanently, regardless of lifecycle state
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies pagination and ordering to a list query
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if order := filter.OrderClause(defaultOrder); order != "" {
		query = query.Order(order)
	}
	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ directory.ClientRepository = (*GormClientRepository)(nil)
