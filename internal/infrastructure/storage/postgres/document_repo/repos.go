package document_repo

import (
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/domain/documents/shipment"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{NewBaseDocumentRepo[invoice.Invoice](txm, storage.TableInvoices, invoice.EntityName)}
}

// PaymentRepo implements payment.Repository.
type PaymentRepo struct {
	*BaseDocumentRepo[*payment.Payment]
}

var _ payment.Repository = (*PaymentRepo)(nil)

func NewPaymentRepo(txm *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{NewBaseDocumentRepo[payment.Payment](txm, storage.TablePayments, payment.EntityName)}
}

// ShipmentRepo implements shipment.Repository.
type ShipmentRepo struct {
	*BaseDocumentRepo[*shipment.Shipment]
}

var _ shipment.Repository = (*ShipmentRepo)(nil)

func NewShipmentRepo(txm *postgres.TxManager) *ShipmentRepo {
	return &ShipmentRepo{NewBaseDocumentRepo[shipment.Shipment](txm, storage.TableShipments, shipment.EntityName)}
}
