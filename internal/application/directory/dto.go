package directory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/shared"
)

// AddressPayload mirrors the postal address value object
type AddressPayload struct {
	Street   string `json:"street"`
	Number   int    `json:"number"`
	Postal   int    `json:"postal"`
	City     string `json:"city"`
	Province string `json:"province"`
}

func (a AddressPayload) toDomain() directory.Address {
	return directory.Address(a)
}

// CreateClientRequest is the payload for client creation
type CreateClientRequest struct {
	Name    string         `json:"name" binding:"required"`
	TaxID   string         `json:"taxId"`
	Address AddressPayload `json:"address"`
	LogoURL string         `json:"logo"`
}

// UpdateClientRequest is a partial client update; nil fields are unchanged
type UpdateClientRequest struct {
	Name    *string         `json:"name"`
	TaxID   *string         `json:"taxId"`
	Address *AddressPayload `json:"address"`
	LogoURL *string         `json:"logo"`
}

// ClientResponse is the outward representation of a client
type ClientResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	TaxID       string         `json:"taxId,omitempty"`
	Address     AddressPayload `json:"address"`
	LogoURL     string         `json:"logo,omitempty"`
	OwnerUserID string         `json:"ownerUserId"`
	Archived    bool           `json:"archived"`
	ArchivedAt  *time.Time     `json:"archivedAt,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ToClientResponse converts a client aggregate to its response DTO
func ToClientResponse(c *directory.Client) *ClientResponse {
	return &ClientResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		TaxID:       c.TaxID,
		Address:     AddressPayload(c.Address),
		LogoURL:     c.LogoURL,
		OwnerUserID: c.OwnerUserID.String(),
		Archived:    c.IsArchived(),
		ArchivedAt:  c.ArchivedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ServicePricePayload is a billable service rate
type ServicePricePayload struct {
	ServiceName string          `json:"serviceName" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateProjectRequest is the payload for project creation.
// Begin and end dates use the 2006-01-02 layout.
type CreateProjectRequest struct {
	Name          string                `json:"name" binding:"required"`
	ProjectCode   string                `json:"projectCode" binding:"required"`
	Code          string                `json:"code"`
	ClientID      string                `json:"clientId" binding:"required,uuid"`
	Begin         string                `json:"begin"`
	End           string                `json:"end"`
	Notes         string                `json:"notes"`
	ServicePrices []ServicePricePayload `json:"servicePrices"`
}

// UpdateProjectRequest is a partial project update; nil fields are unchanged
type UpdateProjectRequest struct {
	Name          *string                `json:"name"`
	ProjectCode   *string                `json:"projectCode"`
	Code          *string                `json:"code"`
	Begin         *string                `json:"begin"`
	End           *string                `json:"end"`
	Notes         *string                `json:"notes"`
	ServicePrices *[]ServicePricePayload `json:"servicePrices"`
}

// ProjectResponse is the outward representation of a project
type ProjectResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	ProjectCode   string                `json:"projectCode"`
	Code          string                `json:"code,omitempty"`
	ClientID      string                `json:"clientId"`
	Begin         *time.Time            `json:"begin,omitempty"`
	End           *time.Time            `json:"end,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	ServicePrices []ServicePricePayload `json:"servicePrices,omitempty"`
	OwnerUserID   string                `json:"ownerUserId"`
	Archived      bool                  `json:"archived"`
	ArchivedAt    *time.Time            `json:"archivedAt,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToProjectResponse converts a project aggregate to its response DTO
func ToProjectResponse(p *directory.Project) *ProjectResponse {
	prices := make([]ServicePricePayload, 0, len(p.ServicePrices))
	for _, sp := range p.ServicePrices {
		prices = append(prices, ServicePricePayload{ServiceName: sp.ServiceName, UnitPrice: sp.UnitPrice})
	}
	return &ProjectResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		ProjectCode:   p.ProjectCode,
		Code:          p.Code,
		ClientID:      p.ClientID.String(),
		Begin:         p.Begin,
		End:           p.End,
		Notes:         p.Notes,
		ServicePrices: prices,
		OwnerUserID:   p.OwnerUserID.String(),
		Archived:      p.IsArchived(),
		ArchivedAt:    p.ArchivedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// toClientResponses maps a page of aggregates to response DTOs
func toClientResponses(page *shared.Paginated[directory.Client]) *shared.Paginated[ClientResponse] {
	items := make([]ClientResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToClientResponse(&page.Items[i]))
	}
	out := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &out
}

// toProjectResponses maps a page of aggregates to response DTOs
func toProjectResponses(page *shared.Paginated[directory.Project]) *shared.Paginated[ProjectResponse] {
	items := make([]ProjectResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToProjectResponse(&page.Items[i]))
	}
	out := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &out
}
