// Package order provides the Order document with its embedded line items.
package order

import (
	"context"
	"fmt"
	"time"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/core/types"
)

// Status is the order's position in the production pipeline.
type Status string

const (
	StatusNew              Status = "New"
	StatusConfirmed        Status = "Confirmed"
	StatusInProduction     Status = "In Production"
	StatusPacked           Status = "Packed"
	StatusPartiallyShipped Status = "Partially Shipped"
	StatusCompleted        Status = "Completed"
	StatusCancelled        Status = "Cancelled"
)

// Statuses lists the accepted values in pipeline order.
var Statuses = []string{
	string(StatusNew), string(StatusConfirmed), string(StatusInProduction), string(StatusPacked),
	string(StatusPartiallyShipped), string(StatusCompleted), string(StatusCancelled),
}

// PendingStatuses are the states counted as pending on the dashboard.
var PendingStatuses = []string{
	string(StatusNew), string(StatusConfirmed), string(StatusInProduction), string(StatusPacked),
	string(StatusPartiallyShipped),
}

// Priority of an order.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the accepted values.
var Priorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}

// DefaultSource is recorded when the caller does not say where the order came from.
const DefaultSource = "Manual"

// Item is one order line.
//
// ProductName is a snapshot taken when the line is written.
// TotalPrice is always Quantity × UnitPrice and never read from input.
type Item struct {
	ID             id.ID   `json:"id"`
	ProductID      id.ID   `json:"productId"`
	ProductName    string  `json:"productName"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	TotalPrice     float64 `json:"totalPrice"`
	Specifications string  `json:"specifications"`
}

// Recalculate sets TotalPrice from quantity and unit price.
func (it *Item) Recalculate() {
	it.TotalPrice = types.LineTotal(it.Quantity, it.UnitPrice)
}

// ItemPatch holds the fields an item update may change.
type ItemPatch struct {
	Quantity       *float64
	UnitPrice      *float64
	Specifications *string
}

// Apply merges the supplied fields and recomputes the line total.
func (it *Item) Apply(patch ItemPatch) {
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		it.UnitPrice = *patch.UnitPrice
	}
	if patch.Specifications != nil {
		it.Specifications = *patch.Specifications
	}
	it.Recalculate()
}

func (it *Item) validate(p *entity.Problems, label string) {
	p.Check(!id.IsNil(it.ProductID), label+": productId is required")
	p.Check(it.Quantity >= 1, label+": quantity must be at least 1")
	p.NonNegative(it.UnitPrice, label+": unitPrice must be a non-negative number")
}

// ValidateItem checks a single line outside of an order payload.
func ValidateItem(it Item) error {
	var p entity.Problems
	it.validate(&p, "Item")
	return p.Err()
}

// Order is a client's purchase order.
type Order struct {
	entity.Document

	OrderDate    time.Time `db:"order_date" json:"orderDate"`
	DeliveryDate time.Time `db:"delivery_date" json:"deliveryDate"`
	Status       Status    `db:"status" json:"status"`
	Priority     Priority  `db:"priority" json:"priority"`
	OrderSource  string    `db:"order_source" json:"orderSource"`

	// Items is stored as a JSON document, in order
	Items []Item `db:"items" json:"items"`

	// TotalAmount is the sum of item totals
	TotalAmount float64 `db:"total_amount" json:"totalAmount"`

	itemsReplaced bool
}

// NewOrder creates an order with the documented defaults.
func NewOrder(clientID id.ID, deliveryDate time.Time) *Order {
	o := &Order{
		Document:     entity.NewDocument(),
		DeliveryDate: deliveryDate,
		Status:       StatusNew,
		Priority:     PriorityMedium,
		OrderSource:  DefaultSource,
		Items:        []Item{},
	}
	o.ClientID = clientID
	return o
}

// Validate implements entity.Validatable interface.
func (o *Order) Validate(ctx context.Context) error {
	var p entity.Problems

	o.ValidateClient(&p)
	p.Check(!o.DeliveryDate.IsZero(), "Delivery date is required")
	p.OneOf(string(o.Status), Statuses, entity.EnumMessage("Status", Statuses))
	p.OneOf(string(o.Priority), Priorities, entity.EnumMessage("Priority", Priorities))

	for i := range o.Items {
		o.Items[i].validate(&p, fmt.Sprintf("Item %d", i+1))
	}

	return p.Err()
}

// ReplaceItems sets a new item list. The lines are resolved against the
// product catalog and recalculated before the order is saved.
func (o *Order) ReplaceItems(items []Item) {
	if items == nil {
		items = []Item{}
	}
	o.Items = items
	o.itemsReplaced = true
}

// ItemsReplaced reports whether ReplaceItems was called on this value.
func (o *Order) ItemsReplaced() bool {
	return o.itemsReplaced
}

// RecalculateTotals recomputes every line total and, when the order has
// items, the order total. An order without items keeps its current total.
func (o *Order) RecalculateTotals() {
	if len(o.Items) == 0 {
		return
	}
	totals := make([]float64, len(o.Items))
	for i := range o.Items {
		o.Items[i].Recalculate()
		totals[i] = o.Items[i].TotalPrice
	}
	o.TotalAmount = types.Sum(totals...)
}

// sumItems sets TotalAmount from the current item totals, zero when empty.
func (o *Order) sumItems() {
	totals := make([]float64, len(o.Items))
	for i := range o.Items {
		totals[i] = o.Items[i].TotalPrice
	}
	o.TotalAmount = types.Sum(totals...)
}

// FindItem returns the index of the item, or -1.
func (o *Order) FindItem(itemID id.ID) int {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Normalize fills defaults and item ids.
func (o *Order) Normalize(now time.Time) {
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	if o.OrderSource == "" {
		o.OrderSource = DefaultSource
	}
	if o.Items == nil {
		o.Items = []Item{}
	}
	for i := range o.Items {
		if id.IsNil(o.Items[i].ID) {
			o.Items[i].ID = id.New()
		}
	}
}

// IsPending reports whether the order counts as pending on the dashboard.
func (o *Order) IsPending() bool {
	for _, s := range PendingStatuses {
		if string(o.Status) == s {
			return true
		}
	}
	return false
}

// Clone copies the order including its item slice.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = append([]Item(nil), o.Items...)
	return &c
}
