// Package client provides the Client catalog: the customers that place
// orders and own branches, invoices, payments and shipments.
package client

import (
	"context"
	"regexp"
	"strings"

	"boxfactory/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Status of a client account.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Statuses lists the accepted values in display order.
var Statuses = []string{string(StatusActive), string(StatusInactive), string(StatusPending)}

// Client is a customer of the factory.
type Client struct {
	entity.Catalog

	// Email is unique across clients, stored trimmed and lower-cased
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`
	City    string `db:"city" json:"city"`
	State   string `db:"state" json:"state"`
	ZipCode string `db:"zip_code" json:"zipCode"`

	Status Status `db:"status" json:"status"`
}

// NewClient creates an active client.
func NewClient(name, email string) *Client {
	return &Client{
		Catalog: entity.NewCatalog(name),
		Email:   email,
		Status:  StatusActive,
	}
}

// Validate implements entity.Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	var p entity.Problems

	p.Require(c.Name, "Name is required")
	if strings.TrimSpace(c.Email) == "" {
		p.Add("Email is required")
	} else if !emailRE.MatchString(strings.TrimSpace(c.Email)) {
		p.Add("Email format is invalid")
	}
	p.Require(c.Phone, "Phone is required")
	p.Require(c.Address, "Address is required")
	p.Require(c.City, "City is required")
	p.Require(c.State, "State is required")
	p.Require(c.ZipCode, "Zip code is required")
	p.OneOf(string(c.Status), Statuses, entity.EnumMessage("Status", Statuses))

	return p.Err()
}

// Normalize trims the name and canonicalizes the email so that the
// uniqueness constraint is case-insensitive.
func (c *Client) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Status == "" {
		c.Status = StatusActive
	}
}

// IsActive reports whether the client counts as active on the dashboard.
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}
