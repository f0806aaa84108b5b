// Package invoice provides the Invoice document.
package invoice

import (
	"context"
	"time"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
)

// Status of an invoice.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
	StatusOverdue Status = "Overdue"
)

// Statuses lists the accepted values.
var Statuses = []string{string(StatusPending), string(StatusPaid), string(StatusOverdue)}

// Invoice bills a client, optionally for a specific order.
type Invoice struct {
	entity.Document

	// InvoiceNumber is unique; generated as INV-<ms>-<suffix> when blank
	InvoiceNumber string `db:"invoice_number" json:"invoiceNumber"`

	OrderID     *id.ID     `db:"order_id" json:"orderId"`
	Amount      float64    `db:"amount" json:"amount"`
	InvoiceDate time.Time  `db:"invoice_date" json:"invoiceDate"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	Status      Status     `db:"status" json:"status"`
}

// NewInvoice creates a pending invoice.
func NewInvoice(clientID id.ID, amount float64) *Invoice {
	inv := &Invoice{
		Document: entity.NewDocument(),
		Amount:   amount,
		Status:   StatusPending,
	}
	inv.ClientID = clientID
	return inv
}

// Validate implements entity.Validatable interface.
func (inv *Invoice) Validate(ctx context.Context) error {
	var p entity.Problems

	inv.ValidateClient(&p)
	p.NonNegative(inv.Amount, "Amount must be a non-negative number")
	p.OneOf(string(inv.Status), Statuses, entity.EnumMessage("Status", Statuses))

	return p.Err()
}
