package material

import (
	"context"
	"strings"

	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
)

// EntityName is used in not-found messages.
const EntityName = "Material"

// Service provides business logic for the Material catalog.
type Service struct {
	*domain.EntityService[*Material]
	repo Repository
}

// NewService creates a new Material service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Material]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepare)
	base.Hooks().OnBeforeUpdate(func(ctx context.Context, _, next *Material) error {
		return svc.prepare(ctx, next)
	})

	return svc
}

// prepare runs on every write: status is never taken from input.
func (s *Service) prepare(_ context.Context, m *Material) error {
	m.Name = strings.TrimSpace(m.Name)
	m.RecalculateStatus()
	return nil
}
