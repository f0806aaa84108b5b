package invoice

import (
	"context"

	"boxfactory/internal/core/numerator"
	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/documents"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/refs"
)

// EntityName is used in not-found and duplicate messages.
const EntityName = "Invoice"

// Service provides business operations for invoices.
type Service struct {
	*domain.EntityService[*Invoice]
	repo      Repository
	clients   *documents.ClientResolver
	orders    refs.Lookup[*order.Order]
	numerator numerator.Generator
}

// NewService creates a new Invoice service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	clients *documents.ClientResolver,
	orders refs.Lookup[*order.Order],
	gen numerator.Generator,
) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Invoice]{
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

func (s *Service) prepareForCreate(ctx context.Context, inv *Invoice) error {
	if err := s.clients.Stamp(ctx, inv); err != nil {
		return err
	}
	if _, _, err := refs.ResolveOptional(ctx, s.orders, order.EntityName, "orderId", inv.OrderID); err != nil {
		return err
	}

	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = s.Now()
	}
	documents.AssignNumber(&inv.InvoiceNumber, s.numerator, numerator.PrefixInvoice)
	return nil
}

func (s *Service) prepareForUpdate(ctx context.Context, prev, next *Invoice) error {
	if err := s.clients.Restamp(ctx, prev, next); err != nil {
		return err
	}
	if !documents.SameRef(prev.OrderID, next.OrderID) {
		if _, _, err := refs.ResolveOptional(ctx, s.orders, order.EntityName, "orderId", next.OrderID); err != nil {
			return err
		}
	}
	return nil
}
