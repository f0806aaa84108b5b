package document_repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// OrderRepo implements order.Repository. Items live in the jsonb "items" column.
type OrderRepo struct {
	*BaseDocumentRepo[*order.Order]
}

var _ order.Repository = (*OrderRepo)(nil)

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{NewBaseDocumentRepo[order.Order](txm, storage.TableOrders, order.EntityName)}
}

// FindByItemID returns the order whose items contain itemID.
func (r *OrderRepo) FindByItemID(ctx context.Context, itemID id.ID) (*order.Order, error) {
	q, err := r.byItemQuery(itemID)
	if err != nil {
		return nil, err
	}
	o, err := r.FindOne(ctx, q, itemID.String())
	if apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound(order.ItemEntityName, itemID.String())
	}
	return o, err
}

func (r *OrderRepo) byItemQuery(itemID id.ID) (squirrel.SelectBuilder, error) {
	probe, err := json.Marshal([]map[string]string{{"id": itemID.String()}})
	if err != nil {
		return squirrel.SelectBuilder{}, fmt.Errorf("marshal item probe: %w", err)
	}
	return r.BaseSelect().Where("items @> ?::jsonb", string(probe)).Limit(1), nil
}
