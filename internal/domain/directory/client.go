package directory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
)

// Address is a postal address value object
type Address struct {
	Street   string `json:"street"`
	Number   int    `json:"number"`
	Postal   int    `json:"postal"`
	City     string `json:"city"`
	Province string `json:"province"`
}

// Client is a customer of the owning user. Its name must be unique within the
// owner's tenant scope while the client is active.
type Client struct {
	shared.OwnedAggregateRoot
	shared.Lifecycle
	Name    string
	TaxID   string
	Address Address
	LogoURL string
}

// NewClient creates a new active client
func NewClient(ownerUserID uuid.UUID, name, taxID string, address Address) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name is required")
	}

	return &Client{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerUserID),
		Lifecycle:          shared.NewLifecycle(),
		Name:               name,
		TaxID:              strings.TrimSpace(taxID),
		Address:            address,
	}, nil
}

// Rename changes the client name. Tenant-scope uniqueness is checked by the
// application service before calling this.
func (c *Client) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Client name is required")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetTaxID updates the tax identifier
func (c *Client) SetTaxID(taxID string) {
	c.TaxID = strings.TrimSpace(taxID)
	c.Touch()
}

// SetAddress updates the postal address
func (c *Client) SetAddress(address Address) {
	c.Address = address
	c.Touch()
}

// SetLogoURL updates the logo reference
func (c *Client) SetLogoURL(url string) {
	c.LogoURL = strings.TrimSpace(url)
	c.Touch()
}

// Archive transitions the client to the archived state
func (c *Client) Archive() error {
	if err := c.Lifecycle.Archive(); err != nil {
		return err
	}
	c.Touch()
	return nil
}

// Restore transitions the client back to the active state
func (c *Client) Restore() error {
	if err := c.Lifecycle.Restore(); err != nil {
		return err
	}
	c.Touch()
	return nil
}
