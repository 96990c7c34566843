package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/domain/worklog"
)

// DeliveryNoteModel is the persistence model for worklog.DeliveryNote.
// The hours and materials lists are stored as JSON documents.
type DeliveryNoteModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Format      string    `gorm:"size:16;not null"`

	Hours     []string `gorm:"serializer:json"`
	Materials []string `gorm:"serializer:json"`

	Description string `gorm:"type:text"`
	WorkDate    time.Time

	SignatureArtifactRef string `gorm:"size:512"`
	PDFArtifactRef       string `gorm:"size:512"`

	State      string `gorm:"size:16;not null;default:'active';index"`
	ArchivedAt *time.Time

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for delivery notes
func (DeliveryNoteModel) TableName() string {
	return "delivery_notes"
}

// ToDomain converts the model to the domain aggregate
func (m *DeliveryNoteModel) ToDomain() *worklog.DeliveryNote {
	hours := m.Hours
	if hours == nil {
		hours = []string{}
	}
	materials := m.Materials
	if materials == nil {
		materials = []string{}
	}
	return &worklog.DeliveryNote{
		OwnedAggregateRoot: shared.OwnedAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			OwnerUserID: m.OwnerUserID,
		},
		Lifecycle: shared.Lifecycle{
			State:      shared.LifecycleState(m.State),
			ArchivedAt: m.ArchivedAt,
		},
		ClientID:             m.ClientID,
		ProjectID:            m.ProjectID,
		Format:               worklog.NoteFormat(m.Format),
		Hours:                hours,
		Materials:            materials,
		Description:          m.Description,
		WorkDate:             m.WorkDate,
		SignatureArtifactRef: m.SignatureArtifactRef,
		PDFArtifactRef:       m.PDFArtifactRef,
	}
}

// FromDomain populates the model from the domain aggregate
func (m *DeliveryNoteModel) FromDomain(n *worklog.DeliveryNote) {
	m.ID = n.ID
	m.OwnerUserID = n.OwnerUserID
	m.ClientID = n.ClientID
	m.ProjectID = n.ProjectID
	m.Format = string(n.Format)
	m.Hours = n.Hours
	m.Materials = n.Materials
	m.Description = n.Description
	m.WorkDate = n.WorkDate
	m.SignatureArtifactRef = n.SignatureArtifactRef
	m.PDFArtifactRef = n.PDFArtifactRef
	m.State = string(n.State)
	m.ArchivedAt = n.ArchivedAt
	m.Version = n.Version
	m.CreatedAt = n.CreatedAt
	m.UpdatedAt = n.UpdatedAt
}
