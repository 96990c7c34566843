package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
)

// UserModel is the persistence model for identity.User. The company value
// object is flattened into nullable columns; a NULL CIF means no affiliation.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:255"`
	Surname      string    `gorm:"size:255"`
	NIF          string    `gorm:"size:32"`
	Status       string    `gorm:"size:16;not null;default:'active'"`

	CompanyName     *string `gorm:"size:255"`
	CompanyCIF      *string `gorm:"size:32;index"`
	CompanyStreet   *string `gorm:"size:255"`
	CompanyNumber   *int
	CompanyPostal   *int
	CompanyCity     *string `gorm:"size:128"`
	CompanyProvince *string `gorm:"size:128"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for users
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to the domain aggregate
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Surname:      m.Surname,
		NIF:          m.NIF,
		Status:       identity.UserStatus(m.Status),
	}
	if m.CompanyCIF != nil {
		user.Company = &identity.Company{
			Name:     deref(m.CompanyName),
			CIF:      *m.CompanyCIF,
			Street:   deref(m.CompanyStreet),
			Number:   derefInt(m.CompanyNumber),
			Postal:   derefInt(m.CompanyPostal),
			City:     deref(m.CompanyCity),
			Province: deref(m.CompanyProvince),
		}
	}
	return user
}

// FromDomain populates the model from the domain aggregate
func (m *UserModel) FromDomain(u *identity.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.Surname = u.Surname
	m.NIF = u.NIF
	m.Status = string(u.Status)
	m.Version = u.Version
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt

	if u.Company != nil {
		m.CompanyName = &u.Company.Name
		m.CompanyCIF = &u.Company.CIF
		m.CompanyStreet = &u.Company.Street
		m.CompanyNumber = &u.Company.Number
		m.CompanyPostal = &u.Company.Postal
		m.CompanyCity = &u.Company.City
		m.CompanyProvince = &u.Company.Province
	} else {
		m.CompanyName = nil
		m.CompanyCIF = nil
		m.CompanyStreet = nil
		m.CompanyNumber = nil
		m.CompanyPostal = nil
		m.CompanyCity = nil
		m.CompanyProvince = nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
