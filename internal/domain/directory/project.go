package directory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/worklog/backend/internal/domain/shared"
)

// ServicePrice is a billable service rate attached to a project
type ServicePrice struct {
	ServiceName string          `json:"serviceName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Project is a unit of work for a client. Both its name and its project code
// must be unique within the owner's tenant scope, each evaluated against its
// own field.
type Project struct {
	shared.OwnedAggregateRoot
	shared.Lifecycle
	Name          string
	ProjectCode   string
	Code          string
	ClientID      uuid.UUID
	Begin         *time.Time
	End           *time.Time
	Notes         string
	ServicePrices []ServicePrice
}

// NewProject creates a new active project
func NewProject(ownerUserID, clientID uuid.UUID, name, projectCode string) (*Project, error) {
	name = strings.TrimSpace(name)
	projectCode = strings.TrimSpace(projectCode)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Project name is required")
	}
	if projectCode == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Project code is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID is required")
	}

	return &Project{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerUserID),
		Lifecycle:          shared.NewLifecycle(),
		Name:               name,
		ProjectCode:        projectCode,
		ClientID:           clientID,
	}, nil
}

// Rename changes the project name
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project name is required")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetProjectCode changes the tenant-facing project code
func (p *Project) SetProjectCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Project code is required")
	}
	p.ProjectCode = code
	p.Touch()
	return nil
}

// SetInternalCode updates the internal bookkeeping code
func (p *Project) SetInternalCode(code string) {
	p.Code = strings.TrimSpace(code)
	p.Touch()
}

// SetPeriod updates the working period
func (p *Project) SetPeriod(begin, end *time.Time) error {
	if begin != nil && end != nil && end.Before(*begin) {
		return shared.NewDomainError("INVALID_INPUT", "Project end date precedes begin date")
	}
	p.Begin = begin
	p.End = end
	p.Touch()
	return nil
}

// SetNotes updates the free-form notes
func (p *Project) SetNotes(notes string) {
	p.Notes = notes
	p.Touch()
}

// SetServicePrices replaces the billable service rates
func (p *Project) SetServicePrices(prices []ServicePrice) error {
	for _, sp := range prices {
		if strings.TrimSpace(sp.ServiceName) == "" {
			return shared.NewDomainError("INVALID_INPUT", "Service price name is required")
		}
		if sp.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Service price cannot be negative")
		}
	}
	p.ServicePrices = prices
	p.Touch()
	return nil
}

// Archive transitions the project to the archived state
func (p *Project) Archive() error {
	if err := p.Lifecycle.Archive(); err != nil {
		return err
	}
	p.Touch()
	return nil
}

// Restore transitions the project back to the active state
func (p *Project) Restore() error {
	if err := p.Lifecycle.Restore(); err != nil {
		return err
	}
	p.Touch()
	return nil
}
