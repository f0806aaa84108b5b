package product

import (
	"context"
	"fmt"

	"boxfactory/internal/core/id"
	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/refs"
)

// EntityName is used in not-found messages.
const EntityName = "Product"

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.EntityService[*Product]
	repo      Repository
	materials refs.Lookup[*material.Material]
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, materials refs.Lookup[*material.Material]) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		materials:     materials,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	p.Normalize()
	return s.resolveMaterials(ctx, p)
}

func (s *Service) prepareForUpdate(ctx context.Context, _, next *Product) error {
	next.Normalize()
	if !next.MaterialsReplaced() {
		return nil
	}
	return s.resolveMaterials(ctx, next)
}

// resolveMaterials checks every line in order and snapshots the material's
// name and unit. The first unknown material aborts the write.
func (s *Service) resolveMaterials(ctx context.Context, p *Product) error {
	for i := range p.Materials {
		line := &p.Materials[i]
		m, err := refs.ResolveLine(ctx, s.materials, material.EntityName, fmt.Sprintf("materials[%d].materialId", i), line.MaterialID)
		if err != nil {
			return err
		}
		line.MaterialName = m.Name
		line.Unit = string(m.Unit)
	}
	return nil
}

// Materials returns the bill of materials of a product.
func (s *Service) Materials(ctx context.Context, productID id.ID) ([]MaterialLine, error) {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return p.Materials, nil
}
