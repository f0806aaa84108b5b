package memory

import (
	"context"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/catalogs/branch"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/domain/documents/shipment"
	"boxfactory/internal/infrastructure/storage"
)

// OrderRepo adds item lookup to the generic collection.
type OrderRepo struct {
	*Repo[*order.Order]
}

var _ order.Repository = (*OrderRepo)(nil)

// FindByItemID scans every order for the item.
func (r *OrderRepo) FindByItemID(ctx context.Context, itemID id.ID) (*order.Order, error) {
	r.mu.RLock()
	var found *order.Order
	for _, o := range r.rows {
		if o.FindItem(itemID) >= 0 {
			found = o
			break
		}
	}
	r.mu.RUnlock()

	if found == nil {
		return nil, apperror.NewNotFound(order.ItemEntityName, itemID)
	}
	return clone(found)
}

// Store bundles one collection per entity.
type Store struct {
	Clients   *Repo[*client.Client]
	Branches  *Repo[*branch.Branch]
	Materials *Repo[*material.Material]
	Products  *Repo[*product.Product]
	Orders    *OrderRepo
	Invoices  *Repo[*invoice.Invoice]
	Payments  *Repo[*payment.Payment]
	Shipments *Repo[*shipment.Shipment]

	Audit     *AuditLog
	Dashboard *DashboardRepo
	TxManager *TxManager
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		Clients:   NewRepo[*client.Client](client.EntityName, storage.UniqueKeys[storage.TableClients]),
		Branches:  NewRepo[*branch.Branch](branch.EntityName, nil),
		Materials: NewRepo[*material.Material](material.EntityName, nil),
		Products:  NewRepo[*product.Product](product.EntityName, nil),
		Orders:    &OrderRepo{Repo: NewRepo[*order.Order](order.EntityName, nil)},
		Invoices:  NewRepo[*invoice.Invoice](invoice.EntityName, storage.UniqueKeys[storage.TableInvoices]),
		Payments:  NewRepo[*payment.Payment](payment.EntityName, storage.UniqueKeys[storage.TablePayments]),
		Shipments: NewRepo[*shipment.Shipment](shipment.EntityName, storage.UniqueKeys[storage.TableShipments]),
		Audit:     NewAuditLog(),
		TxManager: NewTxManager(),
	}
	s.Dashboard = &DashboardRepo{store: s}
	return s
}
