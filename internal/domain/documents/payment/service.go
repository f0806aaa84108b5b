package payment

import (
	"context"

	"boxfactory/internal/core/numerator"
	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/documents"
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/refs"
)

// EntityName is used in not-found and duplicate messages.
const EntityName = "Payment"

// Service provides business operations for payments.
type Service struct {
	*domain.EntityService[*Payment]
	repo      Repository
	clients   *documents.ClientResolver
	invoices  refs.Lookup[*invoice.Invoice]
	numerator numerator.Generator
}

// NewService creates a new Payment service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	clients *documents.ClientResolver,
	invoices refs.Lookup[*invoice.Invoice],
	gen numerator.Generator,
) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Payment]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		clients:       clients,
		invoices:      invoices,
		numerator:     gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Payment) error {
	if err := s.clients.Stamp(ctx, p); err != nil {
		return err
	}
	if _, _, err := refs.ResolveOptional(ctx, s.invoices, invoice.EntityName, "invoiceId", p.InvoiceID); err != nil {
		return err
	}

	if p.Date.IsZero() {
		p.Date = s.Now()
	}
	documents.AssignNumber(&p.PaymentNumber, s.numerator, numerator.PrefixPayment)
	return nil
}

func (s *Service) prepareForUpdate(ctx context.Context, prev, next *Payment) error {
	if err := s.clients.Restamp(ctx, prev, next); err != nil {
		return err
	}
	if documents.SameRef(prev.InvoiceID, next.InvoiceID) {
		return nil
	}
	_, _, err := refs.ResolveOptional(ctx, s.invoices, invoice.EntityName, "invoiceId", next.InvoiceID)
	return err
}
