package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/shared"
)

// ClientModel is the persistence model for directory.Client
type ClientModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:255;not null;index"`
	TaxID       string    `gorm:"size:32"`

	Street   string `gorm:"size:255"`
	Number   int
	Postal   int
	City     string `gorm:"size:128"`
	Province string `gorm:"size:128"`

	LogoURL string `gorm:"size:512"`

	State      string `gorm:"size:16;not null;default:'active';index"`
	ArchivedAt *time.Time

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for clients
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to the domain aggregate
func (m *ClientModel) ToDomain() *directory.Client {
	return &directory.Client{
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
		Name:  m.Name,
		TaxID: m.TaxID,
		Address: directory.Address{
			Street:   m.Street,
			Number:   m.Number,
			Postal:   m.Postal,
			City:     m.City,
			Province: m.Province,
		},
		LogoURL: m.LogoURL,
	}
}

// FromDomain populates the model from the domain aggregate
func (m *ClientModel) FromDomain(c *directory.Client) {
	m.ID = c.ID
	m.OwnerUserID = c.OwnerUserID
	m.Name = c.Name
	m.TaxID = c.TaxID
	m.Street = c.Address.Street
	m.Number = c.Address.Number
	m.Postal = c.Address.Postal
	m.City = c.Address.City
	m.Province = c.Address.Province
	m.LogoURL = c.LogoURL
	m.State = string(c.State)
	m.ArchivedAt = c.ArchivedAt
	m.Version = c.Version
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// ProjectModel is the persistence model for directory.Project.
// Service prices are stored as a JSON document.
type ProjectModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:255;not null;index"`
	ProjectCode string    `gorm:"size:64;not null;index"`
	Code        string    `gorm:"size:64"`
	Begin       *time.Time
	End         *time.Time
	Notes       string `gorm:"type:text"`

	ServicePrices []directory.ServicePrice `gorm:"serializer:json"`

	State      string `gorm:"size:16;not null;default:'active';index"`
	ArchivedAt *time.Time

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for projects
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the model to the domain aggregate
func (m *ProjectModel) ToDomain() *directory.Project {
	return &directory.Project{
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
		Name:          m.Name,
		ProjectCode:   m.ProjectCode,
		Code:          m.Code,
		ClientID:      m.ClientID,
		Begin:         m.Begin,
		End:           m.End,
		Notes:         m.Notes,
		ServicePrices: m.ServicePrices,
	}
}

// FromDomain populates the model from the domain aggregate
func (m *ProjectModel) FromDomain(p *directory.Project) {
	m.ID = p.ID
	m.OwnerUserID = p.OwnerUserID
	m.ClientID = p.ClientID
	m.Name = p.Name
	m.ProjectCode = p.ProjectCode
	m.Code = p.Code
	m.Begin = p.Begin
	m.End = p.End
	m.Notes = p.Notes
	m.ServicePrices = p.ServicePrices
	m.State = string(p.State)
	m.ArchivedAt = p.ArchivedAt
	m.Version = p.Version
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
