// Package branch provides the Branch catalog: physical sites of a client.
package branch

import (
	"context"
	"strings"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
)

// Status of a branch.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Statuses lists the accepted values.
var Statuses = []string{string(StatusActive), string(StatusInactive)}

// Branch is a location belonging to a client.
type Branch struct {
	entity.Catalog

	Location string `db:"location" json:"location"`
	Manager  string `db:"manager" json:"manager"`
	Phone    string `db:"phone" json:"phone"`

	// ClientID is required and must reference an existing client
	ClientID id.ID `db:"client_id" json:"clientId"`

	Status Status `db:"status" json:"status"`
}

// NewBranch creates an active branch for the client.
func NewBranch(name string, clientID id.ID) *Branch {
	return &Branch{
		Catalog:  entity.NewCatalog(name),
		ClientID: clientID,
		Status:   StatusActive,
	}
}

// Validate implements entity.Validatable interface.
func (b *Branch) Validate(ctx context.Context) error {
	var p entity.Problems

	p.Require(b.Name, "Branch name is required")
	p.Require(b.Location, "Location is required")
	p.Check(!id.IsNil(b.ClientID), "Client ID is required")
	p.OneOf(string(b.Status), Statuses, entity.EnumMessage("Status", Statuses))

	return p.Err()
}

// Normalize trims the display name.
func (b *Branch) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
}
