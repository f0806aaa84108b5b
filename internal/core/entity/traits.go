package entity

import (
	"boxfactory/internal/core/id"
)

// ClientAware is a trait for records owned by a client.
//
// ClientName is a snapshot copied from the client when the reference is set.
// It is not kept in sync if the client is renamed later.
type ClientAware struct {
	ClientID   id.ID  `db:"client_id" json:"clientId"`
	ClientName string `db:"client_name" json:"clientName"`
}

// ValidateClient records a problem when the owning client is missing.
func (c *ClientAware) ValidateClient(p *Problems) {
	p.Check(!id.IsNil(c.ClientID), "Client ID is required")
}

// GetClientID returns the owning client (useful for interfaces).
func (c *ClientAware) GetClientID() id.ID {
	return c.ClientID
}

// SetClientName stores the client name snapshot.
func (c *ClientAware) SetClientName(name string) {
	c.ClientName = name
}

// IClientAware is an interface for any record owned by a client.
type IClientAware interface {
	GetClientID() id.ID
	SetClientName(name string)
}
