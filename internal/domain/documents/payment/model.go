// Package payment provides the Payment document.
package payment

import (
	"context"
	"strings"
	"time"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
)

// Method of payment.
type Method string

const (
	MethodBankTransfer Method = "Bank Transfer"
	MethodCash         Method = "Cash"
	MethodCheck        Method = "Check"
	MethodCreditCard   Method = "Credit Card"
	MethodUPI          Method = "UPI"
)

// Methods lists the accepted values.
var Methods = []string{
	string(MethodBankTransfer), string(MethodCash), string(MethodCheck), string(MethodCreditCard), string(MethodUPI),
}

// Status of a payment.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Statuses lists the accepted values.
var Statuses = []string{string(StatusPending), string(StatusCompleted), string(StatusFailed)}

// Payment records money received from a client.
type Payment struct {
	entity.Document

	// PaymentNumber is unique; generated as PAY-<ms>-<suffix> when blank
	PaymentNumber string `db:"payment_number" json:"paymentNumber"`

	InvoiceID       *id.ID    `db:"invoice_id" json:"invoiceId"`
	Amount          float64   `db:"amount" json:"amount"`
	Date            time.Time `db:"date" json:"date"`
	PaymentMethod   Method    `db:"payment_method" json:"paymentMethod"`
	Status          Status    `db:"status" json:"status"`
	ReferenceNumber string    `db:"reference_number" json:"referenceNumber"`
}

// NewPayment creates a pending payment.
func NewPayment(clientID id.ID, amount float64, method Method) *Payment {
	p := &Payment{
		Document:      entity.NewDocument(),
		Amount:        amount,
		PaymentMethod: method,
		Status:        StatusPending,
	}
	p.ClientID = clientID
	return p
}

// Validate implements entity.Validatable interface.
func (pm *Payment) Validate(ctx context.Context) error {
	var p entity.Problems

	pm.ValidateClient(&p)
	p.NonNegative(pm.Amount, "Amount must be a non-negative number")
	if strings.TrimSpace(string(pm.PaymentMethod)) == "" {
		p.Add("Payment method is required")
	} else {
		p.OneOf(string(pm.PaymentMethod), Methods, entity.EnumMessage("Payment method", Methods))
	}
	p.OneOf(string(pm.Status), Statuses, entity.EnumMessage("Status", Statuses))

	return p.Err()
}
