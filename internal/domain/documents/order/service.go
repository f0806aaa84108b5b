package order

import (
	"context"
	"fmt"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/core/tx"
	"boxfactory/internal/domain"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/refs"
	"boxfactory/pkg/logger"
)

// EntityName is used in not-found messages.
const EntityName = "Order"

// ItemEntityName is used when an item id does not resolve.
const ItemEntityName = "Order item"

// Service provides business operations for orders and their items.
type Service struct {
	*domain.EntityService[*Order]
	repo     Repository
	clients  refs.Lookup[*client.Client]
	products refs.Lookup[*product.Product]
}

// NewService creates a new Order service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	clients refs.Lookup[*client.Client],
	products refs.Lookup[*product.Product],
) *Service {
	base := domain.NewEntityService(domain.ServiceConfig[*Order]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: EntityName,
	})

	svc := &Service{
		EntityService: base,
		repo:          repo,
		clients:       clients,
		products:      products,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate resolves references first, then copies snapshots,
// then computes totals.
func (s *Service) prepareForCreate(ctx context.Context, o *Order) error {
	o.Normalize(s.Now())

	c, err := refs.Resolve(ctx, s.clients, client.EntityName, "clientId", o.ClientID)
	if err != nil {
		return err
	}
	if err := s.resolveItems(ctx, o); err != nil {
		return err
	}

	o.SetClientName(c.Name)
	o.RecalculateTotals()
	return nil
}

// prepareForUpdate refreshes a snapshot only when its reference changed.
func (s *Service) prepareForUpdate(ctx context.Context, prev, next *Order) error {
	next.Normalize(s.Now())

	if next.ClientID != prev.ClientID {
		c, err := refs.Resolve(ctx, s.clients, client.EntityName, "clientId", next.ClientID)
		if err != nil {
			return err
		}
		next.SetClientName(c.Name)
	}

	if next.ItemsReplaced() {
		if err := s.resolveItems(ctx, next); err != nil {
			return err
		}
		next.RecalculateTotals()
	}
	return nil
}

func (s *Service) resolveItems(ctx context.Context, o *Order) error {
	for i := range o.Items {
		it := &o.Items[i]
		if err := s.resolveItem(ctx, it, fmt.Sprintf("items[%d].productId", i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) resolveItem(ctx context.Context, it *Item, field string) error {
	p, err := refs.ResolveLine(ctx, s.products, product.EntityName, field, it.ProductID)
	if err != nil {
		return err
	}
	it.ProductName = p.Name
	return nil
}

// --- Item operations ---

// Items returns the lines of an order.
func (s *Service) Items(ctx context.Context, orderID id.ID) ([]Item, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o.Items, nil
}

// AddItem appends a line to an existing order and recomputes its total.
func (s *Service) AddItem(ctx context.Context, orderID id.ID, it Item) (Item, error) {
	if err := ValidateItem(it); err != nil {
		return Item{}, err
	}

	prev, err := s.GetByID(ctx, orderID)
	if err != nil {
		return Item{}, err
	}

	if err := s.resolveItem(ctx, &it, "productId"); err != nil {
		return Item{}, err
	}
	it.ID = id.New()
	it.Recalculate()

	next := prev.Clone()
	next.Items = append(next.Items, it)
	next.sumItems()

	if err := s.Update(ctx, prev, next); err != nil {
		return Item{}, err
	}

	logger.Info(ctx, "order item added", "order_id", orderID, "item_id", it.ID)
	return it, nil
}

// UpdateItem merges quantity, unit price and specifications into an item.
func (s *Service) UpdateItem(ctx context.Context, itemID id.ID, patch ItemPatch) (Item, error) {
	prev, idx, err := s.findItem(ctx, itemID)
	if err != nil {
		return Item{}, err
	}

	next := prev.Clone()
	next.Items[idx].Apply(patch)
	if err := ValidateItem(next.Items[idx]); err != nil {
		return Item{}, err
	}
	next.sumItems()

	if err := s.Update(ctx, prev, next); err != nil {
		return Item{}, err
	}
	return next.Items[idx], nil
}

// DeleteItem removes an item from its order.
func (s *Service) DeleteItem(ctx context.Context, itemID id.ID) error {
	prev, idx, err := s.findItem(ctx, itemID)
	if err != nil {
		return err
	}

	next := prev.Clone()
	next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
	next.sumItems()

	return s.Update(ctx, prev, next)
}

func (s *Service) findItem(ctx context.Context, itemID id.ID) (*Order, int, error) {
	o, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, -1, apperror.NewNotFound(ItemEntityName, itemID.String())
		}
		return nil, -1, apperror.NewDatabase("find order item", err)
	}
	idx := o.FindItem(itemID)
	if idx < 0 {
		return nil, -1, apperror.NewNotFound(ItemEntityName, itemID.String())
	}
	return o, idx, nil
}
