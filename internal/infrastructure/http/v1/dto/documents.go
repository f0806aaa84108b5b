package dto

import (
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/domain/documents/shipment"
)

// --- Order ---

// OrderItemRequest is one order line. Product name and line total are derived.
type OrderItemRequest struct {
	ProductID      string  `json:"productId"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
	Specifications string  `json:"specifications" binding:"max=1000"`
}

// ToItem converts the request into an unsaved order item.
func (r OrderItemRequest) ToItem() (order.Item, error) {
	productID, err := parseLineRef(r.ProductID, product.EntityName, "items.productId")
	if err != nil {
		return order.Item{}, err
	}
	return order.Item{
		ProductID:      productID,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		Specifications: r.Specifications,
	}, nil
}

func orderItems(in []OrderItemRequest) ([]order.Item, error) {
	out := make([]order.Item, 0, len(in))
	for _, r := range in {
		it, err := r.ToItem()
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// UpdateOrderItemRequest merges into a single item.
type UpdateOrderItemRequest struct {
	Quantity       *float64 `json:"quantity"`
	UnitPrice      *float64 `json:"unitPrice"`
	Specifications *string  `json:"specifications" binding:"omitempty,max=1000"`
}

func (r UpdateOrderItemRequest) ToPatch() order.ItemPatch {
	return order.ItemPatch{Quantity: r.Quantity, UnitPrice: r.UnitPrice, Specifications: r.Specifications}
}

type CreateOrderRequest struct {
	ClientID     string             `json:"clientId"`
	OrderDate    *Date              `json:"orderDate"`
	DeliveryDate *Date              `json:"deliveryDate"`
	Status       string             `json:"status"`
	Priority     string             `json:"priority"`
	OrderSource  string             `json:"orderSource"`
	Notes        string             `json:"notes" binding:"max=2000"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
}

func (r CreateOrderRequest) ToEntity() (*order.Order, error) {
	clientID, err := parseRef(r.ClientID, client.EntityName, "clientId")
	if err != nil {
		return nil, err
	}
	o := order.NewOrder(clientID, timeOf(r.DeliveryDate))
	o.OrderDate = timeOf(r.OrderDate)
	if r.Status != "" {
		o.Status = order.Status(r.Status)
	}
	if r.Priority != "" {
		o.Priority = order.Priority(r.Priority)
	}
	if r.OrderSource != "" {
		o.OrderSource = r.OrderSource
	}
	o.Notes = r.Notes

	items, err := orderItems(r.Items)
	if err != nil {
		return nil, err
	}
	o.ReplaceItems(items)
	return o, nil
}

type UpdateOrderRequest struct {
	ClientID     *string             `json:"clientId"`
	OrderDate    *Date               `json:"orderDate"`
	DeliveryDate *Date               `json:"deliveryDate"`
	Status       *string             `json:"status"`
	Priority     *string             `json:"priority"`
	OrderSource  *string             `json:"orderSource"`
	Notes        *string             `json:"notes" binding:"omitempty,max=2000"`
	Items        *[]OrderItemRequest `json:"items" binding:"omitempty,dive"`
}

func (r UpdateOrderRequest) ApplyTo(prev *order.Order) (*order.Order, error) {
	next := prev.Clone()
	if r.ClientID != nil {
		clientID, err := parseRef(*r.ClientID, client.EntityName, "clientId")
		if err != nil {
			return nil, err
		}
		next.ClientID = clientID
	}
	if r.OrderDate != nil && !r.OrderDate.IsZero() {
		next.OrderDate = r.OrderDate.Time
	}
	if r.DeliveryDate != nil {
		next.DeliveryDate = r.DeliveryDate.Time
	}
	if r.Status != nil {
		next.Status = order.Status(*r.Status)
	}
	if r.Priority != nil {
		next.Priority = order.Priority(*r.Priority)
	}
	setString(&next.OrderSource, r.OrderSource)
	setString(&next.Notes, r.Notes)
	if r.Items != nil {
		items, err := orderItems(*r.Items)
		if err != nil {
			return nil, err
		}
		next.ReplaceItems(items)
	}
	return next, nil
}

// --- Invoice ---

type CreateInvoiceRequest struct {
	InvoiceNumber string  `json:"invoiceNumber"`
	OrderID       string  `json:"orderId"`
	ClientID      string  `json:"clientId"`
	Amount        float64 `json:"amount"`
	InvoiceDate   *Date   `json:"invoiceDate"`
	DueDate       *Date   `json:"dueDate"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes" binding:"max=2000"`
}

func (r CreateInvoiceRequest) ToEntity() (*invoice.Invoice, error) {
	clientID, err := parseRef(r.ClientID, client.EntityName, "clientId")
	if err != nil {
		return nil, err
	}
	orderID, err := parseOptionalRef(r.OrderID, order.EntityName, "orderId")
	if err != nil {
		return nil, err
	}
	inv := invoice.NewInvoice(clientID, r.Amount)
	inv.InvoiceNumber = r.InvoiceNumber
	inv.OrderID = orderID
	inv.InvoiceDate = timeOf(r.InvoiceDate)
	inv.DueDate = optionalTime(r.DueDate)
	if r.Status != "" {
		inv.Status = invoice.Status(r.Status)
	}
	inv.Notes = r.Notes
	return inv, nil
}

// UpdateInvoiceRequest has no invoiceNumber: a number is assigned once.
type UpdateInvoiceRequest struct {
	OrderID     *string  `json:"orderId"`
	ClientID    *string  `json:"clientId"`
	Amount      *float64 `json:"amount"`
	InvoiceDate *Date    `json:"invoiceDate"`
	DueDate     *Date    `json:"dueDate"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes" binding:"omitempty,max=2000"`
}

func (r UpdateInvoiceRequest) ApplyTo(prev *invoice.Invoice) (*invoice.Invoice, error) {
	next := *prev
	if r.ClientID != nil {
		clientID, err := parseRef(*r.ClientID, client.EntityName, "clientId")
		if err != nil {
			return nil, err
		}
		next.ClientID = clientID
	}
	if r.OrderID != nil {
		orderID, err := parseOptionalRef(*r.OrderID, order.EntityName, "orderId")
		if err != nil {
			return nil, err
		}
		next.OrderID = orderID
	}
	setFloat(&next.Amount, r.Amount)
	if r.InvoiceDate != nil && !r.InvoiceDate.IsZero() {
		next.InvoiceDate = r.InvoiceDate.Time
	}
	if r.DueDate != nil {
		next.DueDate = optionalTime(r.DueDate)
	}
	if r.Status != nil {
		next.Status = invoice.Status(*r.Status)
	}
	setString(&next.Notes, r.Notes)
	return &next, nil
}

// --- Payment ---

type CreatePaymentRequest struct {
	PaymentNumber   string  `json:"paymentNumber"`
	InvoiceID       string  `json:"invoiceId"`
	ClientID        string  `json:"clientId"`
	Amount          float64 `json:"amount"`
	Date            *Date   `json:"date"`
	PaymentMethod   string  `json:"paymentMethod"`
	Status          string  `json:"status"`
	ReferenceNumber string  `json:"referenceNumber"`
	Notes           string  `json:"notes" binding:"max=2000"`
}

func (r CreatePaymentRequest) ToEntity() (*payment.Payment, error) {
	clientID, err := parseRef(r.ClientID, client.EntityName, "clientId")
	if err != nil {
		return nil, err
	}
	invoiceID, err := parseOptionalRef(r.InvoiceID, invoice.EntityName, "invoiceId")
	if err != nil {
		return nil, err
	}
	p := payment.NewPayment(clientID, r.Amount, payment.Method(r.PaymentMethod))
	p.PaymentNumber = r.PaymentNumber
	p.InvoiceID = invoiceID
	p.Date = timeOf(r.Date)
	if r.Status != "" {
		p.Status = payment.Status(r.Status)
	}
	p.ReferenceNumber = r.ReferenceNumber
	p.Notes = r.Notes
	return p, nil
}

type UpdatePaymentRequest struct {
	InvoiceID       *string  `json:"invoiceId"`
	ClientID        *string  `json:"clientId"`
	Amount          *float64 `json:"amount"`
	Date            *Date    `json:"date"`
	PaymentMethod   *string  `json:"paymentMethod"`
	Status          *string  `json:"status"`
	ReferenceNumber *string  `json:"referenceNumber"`
	Notes           *string  `json:"notes" binding:"omitempty,max=2000"`
}

func (r UpdatePaymentRequest) ApplyTo(prev *payment.Payment) (*payment.Payment, error) {
	next := *prev
	if r.ClientID != nil {
		clientID, err := parseRef(*r.ClientID, client.EntityName, "clientId")
		if err != nil {
			return nil, err
		}
		next.ClientID = clientID
	}
	if r.InvoiceID != nil {
		invoiceID, err := parseOptionalRef(*r.InvoiceID, invoice.EntityName, "invoiceId")
		if err != nil {
			return nil, err
		}
		next.InvoiceID = invoiceID
	}
	setFloat(&next.Amount, r.Amount)
	if r.Date != nil && !r.Date.IsZero() {
		next.Date = r.Date.Time
	}
	if r.PaymentMethod != nil {
		next.PaymentMethod = payment.Method(*r.PaymentMethod)
	}
	if r.Status != nil {
		next.Status = payment.Status(*r.Status)
	}
	setString(&next.ReferenceNumber, r.ReferenceNumber)
	setString(&next.Notes, r.Notes)
	return &next, nil
}

// --- Shipment ---

type CreateShipmentRequest struct {
	ShipmentNumber    string `json:"shipmentNumber"`
	OrderID           string `json:"orderId"`
	ClientID          string `json:"clientId"`
	TrackingNumber    string `json:"trackingNumber"`
	ShipmentDate      *Date  `json:"shipmentDate"`
	EstimatedDelivery *Date  `json:"estimatedDelivery"`
	Status            string `json:"status"`
	Notes             string `json:"notes" binding:"max=2000"`
}

func (r CreateShipmentRequest) ToEntity() (*shipment.Shipment, error) {
	clientID, err := parseRef(r.ClientID, client.EntityName, "clientId")
	if err != nil {
		return nil, err
	}
	orderID, err := parseOptionalRef(r.OrderID, order.EntityName, "orderId")
	if err != nil {
		return nil, err
	}
	s := shipment.NewShipment(clientID, r.TrackingNumber)
	s.ShipmentNumber = r.ShipmentNumber
	s.OrderID = orderID
	s.ShipmentDate = timeOf(r.ShipmentDate)
	s.EstimatedDelivery = optionalTime(r.EstimatedDelivery)
	if r.Status != "" {
		s.Status = shipment.Status(r.Status)
	}
	s.Notes = r.Notes
	return s, nil
}

type UpdateShipmentRequest struct {
	OrderID           *string `json:"orderId"`
	ClientID          *string `json:"clientId"`
	TrackingNumber    *string `json:"trackingNumber"`
	ShipmentDate      *Date   `json:"shipmentDate"`
	EstimatedDelivery *Date   `json:"estimatedDelivery"`
	Status            *string `json:"status"`
	Notes             *string `json:"notes" binding:"omitempty,max=2000"`
}

func (r UpdateShipmentRequest) ApplyTo(prev *shipment.Shipment) (*shipment.Shipment, error) {
	next := *prev
	if r.ClientID != nil {
		clientID, err := parseRef(*r.ClientID, client.EntityName, "clientId")
		if err != nil {
			return nil, err
		}
		next.ClientID = clientID
	}
	if r.OrderID != nil {
		orderID, err := parseOptionalRef(*r.OrderID, order.EntityName, "orderId")
		if err != nil {
			return nil, err
		}
		next.OrderID = orderID
	}
	setString(&next.TrackingNumber, r.TrackingNumber)
	if r.ShipmentDate != nil && !r.ShipmentDate.IsZero() {
		next.ShipmentDate = r.ShipmentDate.Time
	}
	if r.EstimatedDelivery != nil {
		next.EstimatedDelivery = optionalTime(r.EstimatedDelivery)
	}
	if r.Status != nil {
		next.Status = shipment.Status(*r.Status)
	}
	setString(&next.Notes, r.Notes)
	return &next, nil
}
