// Package documents holds helpers shared by the client-owned documents
// (orders, invoices, payments, shipments).
package documents

import (
	"context"
	"strings"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/core/numerator"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/refs"
)

// ClientResolver checks a document's owning client and copies its name.
type ClientResolver struct {
	clients refs.Lookup[*client.Client]
}

// NewClientResolver creates a new ClientResolver.
func NewClientResolver(clients refs.Lookup[*client.Client]) *ClientResolver {
	return &ClientResolver{clients: clients}
}

// Stamp resolves the client and stores the name snapshot on doc.
func (r *ClientResolver) Stamp(ctx context.Context, doc entity.IClientAware) error {
	c, err := refs.Resolve(ctx, r.clients, client.EntityName, "clientId", doc.GetClientID())
	if err != nil {
		return err
	}
	doc.SetClientName(c.Name)
	return nil
}

// Restamp resolves the client only when the update changed it.
func (r *ClientResolver) Restamp(ctx context.Context, prev, next entity.IClientAware) error {
	if prev.GetClientID() == next.GetClientID() {
		return nil
	}
	return r.Stamp(ctx, next)
}

// AssignNumber fills a blank business number. Existing numbers are kept,
// so a document is numbered exactly once.
func AssignNumber(number *string, gen numerator.Generator, prefix numerator.Prefix) {
	if strings.TrimSpace(*number) == "" {
		*number = gen.Next(prefix)
		return
	}
	*number = strings.TrimSpace(*number)
}

// SameRef reports whether two optional references point to the same record.
func SameRef(a, b *id.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
