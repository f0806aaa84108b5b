package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/filter"
	"boxfactory/internal/infrastructure/http/v1/dto"
)

// Lister lists a resource with extra conditions.
type Lister interface {
	ListWhere(c *gin.Context, conds ...filter.Item)
}

// ClientLinks serves the per-client lists under /clients/:id.
type ClientLinks struct {
	BaseHandler
	exists   func(ctx context.Context, clientID id.ID) (bool, error)
	branches Lister
	orders   Lister
	payments Lister
}

func NewClientLinks(clients *client.Service, branches, orders, payments Lister) *ClientLinks {
	return &ClientLinks{
		exists:   clients.Exists,
		branches: branches,
		orders:   orders,
		payments: payments,
	}
}

// Branches handles GET /clients/:id/branches.
func (h *ClientLinks) Branches(c *gin.Context) { h.list(c, h.branches) }

// Orders handles GET /clients/:id/orders.
func (h *ClientLinks) Orders(c *gin.Context) { h.list(c, h.orders) }

// Payments handles GET /clients/:id/payments.
func (h *ClientLinks) Payments(c *gin.Context) { h.list(c, h.payments) }

func (h *ClientLinks) list(c *gin.Context, l Lister) {
	clientID, ok := h.PathID(c, "id", client.EntityName)
	if !ok {
		return
	}
	found, err := h.exists(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !found {
		h.Error(c, notFound(client.EntityName, clientID))
		return
	}
	l.ListWhere(c, filter.Eq("client_id", clientID))
}

// OrderItemHandler serves the order line endpoints.
type OrderItemHandler struct {
	BaseHandler
	orders *order.Service
}

func NewOrderItemHandler(orders *order.Service) *OrderItemHandler {
	return &OrderItemHandler{orders: orders}
}

// List handles GET /orders/:id/items.
func (h *OrderItemHandler) List(c *gin.Context) {
	orderID, ok := h.PathID(c, "id", order.EntityName)
	if !ok {
		return
	}
	items, err := h.orders.Items(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Success: true, Count: len(items), Data: items})
}

// Add handles POST /orders/:id/items.
func (h *OrderItemHandler) Add(c *gin.Context) {
	orderID, ok := h.PathID(c, "id", order.EntityName)
	if !ok {
		return
	}
	var req dto.OrderItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	it, err := req.ToItem()
	if err != nil {
		h.Error(c, err)
		return
	}
	added, err := h.orders.AddItem(c.Request.Context(), orderID, it)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, added)
}

// Update handles PUT /order-items/:itemId.
func (h *OrderItemHandler) Update(c *gin.Context) {
	itemID, ok := h.PathID(c, "itemId", order.ItemEntityName)
	if !ok {
		return
	}
	var req dto.UpdateOrderItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	updated, err := h.orders.UpdateItem(c.Request.Context(), itemID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// Delete handles DELETE /order-items/:itemId.
func (h *OrderItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.PathID(c, "itemId", order.ItemEntityName)
	if !ok {
		return
	}
	if err := h.orders.DeleteItem(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.Deleted(c, order.ItemEntityName)
}

// ProductMaterials handles GET /products/:id/materials.
type ProductMaterials struct {
	BaseHandler
	products *product.Service
}

func NewProductMaterials(products *product.Service) *ProductMaterials {
	return &ProductMaterials{products: products}
}

func (h *ProductMaterials) List(c *gin.Context) {
	productID, ok := h.PathID(c, "id", product.EntityName)
	if !ok {
		return
	}
	lines, err := h.products.Materials(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Success: true, Count: len(lines), Data: lines})
}
