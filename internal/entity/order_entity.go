package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions encodes the one-directional order lifecycle. There is
// no un-cancel and no un-deliver.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// CanTransitionTo reports whether the status change is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem captures the unit price at order time; it is never re-derived
// from the live catalog.
type OrderItem struct {
	ProductId uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

type Order struct {
	Id              uuid.UUID
	ProjectId       uuid.UUID
	CustomerId      *uuid.UUID
	ConversationId  *uuid.UUID
	Items           []OrderItem
	TotalAmount     float64
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	Notes           *string
	Status          OrderStatus
	StatusChangedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
