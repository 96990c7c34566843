package shared

import "time"

// LifecycleState represents the soft-delete state of an archivable resource
type LifecycleState string

const (
	// LifecycleActive is the normal, visible state
	LifecycleActive LifecycleState = "active"
	// LifecycleArchived is the soft-deleted state; the record persists but is
	// excluded from active listings until restored or purged
	LifecycleArchived LifecycleState = "archived"
)

// IsValid checks if the lifecycle state is valid
func (s LifecycleState) IsValid() bool {
	return s == LifecycleActive || s == LifecycleArchived
}

// Lifecycle models the Active -> Archived -> Active state machine shared by
// archivable aggregates. Purge (hard delete) is a repository concern and is
// reachable from either state.
type Lifecycle struct {
	State      LifecycleState `gorm:"type:varchar(16);not null;default:'active';index"`
	ArchivedAt *time.Time
}

// NewLifecycle returns a lifecycle in the active state
func NewLifecycle() Lifecycle {
	return Lifecycle{State: LifecycleActive}
}

// IsArchived reports whether the resource is in the archived state
func (l *Lifecycle) IsArchived() bool {
	return l.State == LifecycleArchived
}

// Archive transitions Active -> Archived
func (l *Lifecycle) Archive() error {
	if l.State != LifecycleActive {
		return ErrInvalidState
	}
	now := time.Now()
	l.State = LifecycleArchived
	l.ArchivedAt = &now
	return nil
}

// Restore transitions Archived -> Active
func (l *Lifecycle) Restore() error {
	if l.State != LifecycleArchived {
		return ErrInvalidState
	}
	l.State = LifecycleActive
	l.ArchivedAt = nil
	return nil
}
