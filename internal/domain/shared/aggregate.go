package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// Touch records a mutation on the aggregate: the update timestamp moves and
// the version counter increments
func (a *BaseAggregateRoot) Touch() {
	a.BaseEntity.Touch()
	a.IncrementVersion()
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// OwnedAggregateRoot extends BaseAggregateRoot with user ownership.
// Visibility beyond the owner is computed from tenant membership, never stored.
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewOwnedAggregateRoot creates a new owner-scoped aggregate root
func NewOwnedAggregateRoot(ownerUserID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		OwnerUserID:       ownerUserID,
	}
}

// GetOwnerUserID returns the owning user ID
func (o *OwnedAggregateRoot) GetOwnerUserID() uuid.UUID {
	return o.OwnerUserID
}
