package v1

import (
	"boxfactory/internal/core/numerator"
	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain/audit"
	"boxfactory/internal/domain/catalogs/branch"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/dashboard"
	"boxfactory/internal/domain/documents"
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/domain/documents/shipment"
)

// Backend is the storage the API runs on: Postgres repositories or the
// in-memory store, behind the same interfaces.
type Backend struct {
	TxManager tx.Manager

	Clients   client.Repository
	Branches  branch.Repository
	Materials material.Repository
	Products  product.Repository
	Orders    order.Repository
	Invoices  invoice.Repository
	Payments  payment.Repository
	Shipments shipment.Repository

	Audit     audit.Log
	Dashboard dashboard.Repository
}

// Audit entity types, also accepted by GET /audit/:entity/:id.
const (
	AuditClient   = "client"
	AuditBranch   = "branch"
	AuditMaterial = "material"
	AuditProduct  = "product"
	AuditOrder    = "order"
	AuditInvoice  = "invoice"
	AuditPayment  = "payment"
	AuditShipment = "shipment"
)

// AuditEntityTypes lists every audited entity type.
var AuditEntityTypes = []string{
	AuditClient, AuditBranch, AuditMaterial, AuditProduct,
	AuditOrder, AuditInvoice, AuditPayment, AuditShipment,
}

// Services bundles the domain services built over a Backend.
type Services struct {
	Clients   *client.Service
	Branches  *branch.Service
	Materials *material.Service
	Products  *product.Service
	Orders    *order.Service
	Invoices  *invoice.Service
	Payments  *payment.Service
	Shipments *shipment.Service
	Dashboard *dashboard.Service
}

// NewServices wires services to b. When b.Audit is set every service
// records its writes there.
func NewServices(b Backend, gen numerator.Generator) *Services {
	clientRefs := documents.NewClientResolver(b.Clients.GetByID)

	s := &Services{
		Clients:   client.NewService(b.Clients, b.TxManager),
		Branches:  branch.NewService(b.Branches, b.TxManager, b.Clients.GetByID),
		Materials: material.NewService(b.Materials, b.TxManager),
		Products:  product.NewService(b.Products, b.TxManager, b.Materials.GetByID),
		Orders:    order.NewService(b.Orders, b.TxManager, b.Clients.GetByID, b.Products.GetByID),
		Invoices:  invoice.NewService(b.Invoices, b.TxManager, clientRefs, b.Orders.GetByID, gen),
		Payments:  payment.NewService(b.Payments, b.TxManager, clientRefs, b.Invoices.GetByID, gen),
		Shipments: shipment.NewService(b.Shipments, b.TxManager, clientRefs, b.Orders.GetByID, gen),
		Dashboard: dashboard.NewService(b.Dashboard),
	}

	if b.Audit != nil {
		audit.Attach(s.Clients.Hooks(), b.Audit, AuditClient)
		audit.Attach(s.Branches.Hooks(), b.Audit, AuditBranch)
		audit.Attach(s.Materials.Hooks(), b.Audit, AuditMaterial)
		audit.Attach(s.Products.Hooks(), b.Audit, AuditProduct)
		audit.Attach(s.Orders.Hooks(), b.Audit, AuditOrder)
		audit.Attach(s.Invoices.Hooks(), b.Audit, AuditInvoice)
		audit.Attach(s.Payments.Hooks(), b.Audit, AuditPayment)
		audit.Attach(s.Shipments.Hooks(), b.Audit, AuditShipment)
	}
	return s
}
