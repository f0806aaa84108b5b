package client

import (
	"context"

	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
)

// EntityName is used in not-found and duplicate messages.
const EntityName = "Client"

// Service provides business logic for the Client catalog.
type Service struct {
	*domain.EntityService[*Client]
	repo Repository
}

// NewService creates a new Client service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(_ context.Context, c *Client) error {
	c.Normalize()
	return nil
}

func (s *Service) prepareForUpdate(_ context.Context, _, next *Client) error {
	next.Normalize()
	return nil
}
