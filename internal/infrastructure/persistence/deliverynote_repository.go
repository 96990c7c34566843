package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/domain/worklog"
	"github.com/worklog/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDeliveryNoteRepository implements DeliveryNoteRepository using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// FindActiveByID finds an active note by ID
func (r *GormDeliveryNoteRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*worklog.DeliveryNote, error) {
	return r.findByIDInState(ctx, id, shared.LifecycleActive)
}

// FindArchivedByID finds an archived note by ID
func (r *GormDeliveryNoteRepository) FindArchivedByID(ctx context.Context, id uuid.UUID) (*worklog.DeliveryNote, error) {
	return r.findByIDInState(ctx, id, shared.LifecycleArchived)
}

// FindByID finds a note in any lifecycle state
func (r *GormDeliveryNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*worklog.DeliveryNote, error) {
	var model models.DeliveryNoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormDeliveryNoteRepository) findByIDInState(ctx context.Context, id uuid.UUID, state shared.LifecycleState) (*worklog.DeliveryNote, error) {
	var model models.DeliveryNoteModel
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

// ListActiveByOwners lists active notes owned by any of the given users
func (r *GormDeliveryNoteRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[worklog.DeliveryNote], error) {
	return r.listByOwnersInState(ctx, ownerIDs, shared.LifecycleActive, filter)
}

// ListArchivedByOwners lists archived notes owned by any of the given users
func (r *GormDeliveryNoteRepository) ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[worklog.DeliveryNote], error) {
	return r.listByOwnersInState(ctx, ownerIDs, shared.LifecycleArchived, filter)
}

func (r *GormDeliveryNoteRepository) listByOwnersInState(ctx context.Context, ownerIDs []uuid.UUID, state shared.LifecycleState, filter shared.Filter) (*shared.Paginated[worklog.DeliveryNote], error) {
	if len(ownerIDs) == 0 {
		result := shared.NewPaginated([]worklog.DeliveryNote{}, 0, filter.Page, filter.PageSize)
		return &result, nil
	}

	base := r.db.WithContext(ctx).
		Model(&models.DeliveryNoteModel{}).
		Where("owner_user_id IN ? AND state = ?", ownerIDs, state)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("description ILIKE ?", pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var noteModels []models.DeliveryNoteModel
	if err := applyFilter(base, filter, "work_date DESC").Find(&noteModels).Error; err != nil {
		return nil, err
	}

	notes := make([]worklog.DeliveryNote, len(noteModels))
	for i := range noteModels {
		notes[i] = *noteModels[i].ToDomain()
	}
	result := shared.NewPaginated(notes, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a note
func (r *GormDeliveryNoteRepository) Save(ctx context.Context, note *worklog.DeliveryNote) error {
	var model models.DeliveryNoteModel
	model.FromDomain(note)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a note permanently
func (r *GormDeliveryNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeliveryNoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDeliveryNoteRepository implements DeliveryNoteRepository
var _ worklog.DeliveryNoteRepository = (*GormDeliveryNoteRepository)(nil)
