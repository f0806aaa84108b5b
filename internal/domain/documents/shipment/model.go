// Package shipment provides the Shipment document.
package shipment

import (
	"context"
	"time"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
)

// Status of a shipment.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusInTransit Status = "In Transit"
	StatusDelivered Status = "Delivered"
)

// Statuses lists the accepted values.
var Statuses = []string{string(StatusPending), string(StatusInTransit), string(StatusDelivered)}

// Shipment tracks goods sent to a client.
type Shipment struct {
	entity.Document

	// ShipmentNumber is unique; generated as SHIP-<ms>-<suffix> when blank
	ShipmentNumber string `db:"shipment_number" json:"shipmentNumber"`

	OrderID           *id.ID     `db:"order_id" json:"orderId"`
	TrackingNumber    string     `db:"tracking_number" json:"trackingNumber"`
	ShipmentDate      time.Time  `db:"shipment_date" json:"shipmentDate"`
	EstimatedDelivery *time.Time `db:"estimated_delivery" json:"estimatedDelivery"`
	Status            Status     `db:"status" json:"status"`
}

// NewShipment creates a pending shipment.
func NewShipment(clientID id.ID, trackingNumber string) *Shipment {
	s := &Shipment{
		Document:       entity.NewDocument(),
		TrackingNumber: trackingNumber,
		Status:         StatusPending,
	}
	s.ClientID = clientID
	return s
}

// Validate implements entity.Validatable interface.
func (s *Shipment) Validate(ctx context.Context) error {
	var p entity.Problems

	s.ValidateClient(&p)
	p.Require(s.TrackingNumber, "Tracking number is required")
	p.OneOf(string(s.Status), Statuses, entity.EnumMessage("Status", Statuses))

	return p.Err()
}
