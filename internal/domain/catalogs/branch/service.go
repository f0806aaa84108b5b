package branch

import (
	"context"

	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/refs"
)

// EntityName is used in not-found messages.
const EntityName = "Branch"

// Service provides business logic for the Branch catalog.
type Service struct {
	*domain.EntityService[*Branch]
	repo    Repository
	clients refs.Lookup[*client.Client]
}

// NewService creates a new Branch service.
// clients resolves the owning client on every write that sets it.
func NewService(repo Repository, txManager tx.Manager, clients refs.Lookup[*client.Client]) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Branch]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		clients:       clients,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, b *Branch) error {
	b.Normalize()
	_, err := refs.Resolve(ctx, s.clients, client.EntityName, "clientId", b.ClientID)
	return err
}

func (s *Service) prepareForUpdate(ctx context.Context, prev, next *Branch) error {
	next.Normalize()
	if next.ClientID == prev.ClientID {
		return nil
	}
	_, err := refs.Resolve(ctx, s.clients, client.EntityName, "clientId", next.ClientID)
	return err
}
