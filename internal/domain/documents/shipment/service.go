package shipment

import (
	"context"
	"strings"

	"boxfactory/internal/core/numerator"
	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/documents"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/refs"
)

// EntityName is used in not-found and duplicate messages.
const EntityName = "Shipment"

// Service provides business operations for shipments.
type Service struct {
	*domain.EntityService[*Shipment]
	repo      Repository
	clients   *documents.ClientResolver
	orders    refs.Lookup[*order.Order]
	numerator numerator.Generator
}

// NewService creates a new Shipment service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	clients *documents.ClientResolver,
	orders refs.Lookup[*order.Order],
	gen numerator.Generator,
) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Shipment]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		clients:       clients,
		orders:        orders,
		numerator:     gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, sh *Shipment) error {
	if err := s.clients.Stamp(ctx, sh); err != nil {
		return err
	}
	if _, _, err := refs.ResolveOptional(ctx, s.orders, order.EntityName, "orderId", sh.OrderID); err != nil {
		return err
	}

	sh.TrackingNumber = strings.TrimSpace(sh.TrackingNumber)
	if sh.ShipmentDate.IsZero() {
		sh.ShipmentDate = s.Now()
	}
	documents.AssignNumber(&sh.ShipmentNumber, s.numerator, numerator.PrefixShipment)
	return nil
}

func (s *Service) prepareForUpdate(ctx context.Context, prev, next *Shipment) error {
	if err := s.clients.Restamp(ctx, prev, next); err != nil {
		return err
	}
	next.TrackingNumber = strings.TrimSpace(next.TrackingNumber)
	if documents.SameRef(prev.OrderID, next.OrderID) {
		return nil
	}
	_, _, err := refs.ResolveOptional(ctx, s.orders, order.EntityName, "orderId", next.OrderID)
	return err
}
