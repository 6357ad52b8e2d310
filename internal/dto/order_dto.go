package dto

import (
	"time"

	"github.com/google/uuid"
)

type OrderItemDTO struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	UnitPrice float64   `json:"unit_price"`
}

type CreateOrderRequest struct {
	ProjectId       uuid.UUID      `json:"project_id" validate:"required"`
	CustomerId      *uuid.UUID     `json:"customer_id,omitempty"`
	ConversationId  *uuid.UUID     `json:"conversation_id,omitempty"`
	Items           []OrderItemDTO `json:"items" validate:"dive"`
	TotalAmount     float64        `json:"total_amount"`
	CustomerName    string         `json:"customer_name,omitempty"`
	CustomerPhone   string         `json:"customer_phone,omitempty"`
	CustomerAddress string         `json:"customer_address,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

type CreateOrderResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

type OrderResponse struct {
	Id              uuid.UUID      `json:"id"`
	ProjectId       uuid.UUID      `json:"project_id"`
	CustomerId      *uuid.UUID     `json:"customer_id,omitempty"`
	ConversationId  *uuid.UUID     `json:"conversation_id,omitempty"`
	Items           []OrderItemDTO `json:"items"`
	TotalAmount     float64        `json:"total_amount"`
	CustomerName    *string        `json:"customer_name,omitempty"`
	CustomerPhone   *string        `json:"customer_phone,omitempty"`
	CustomerAddress *string        `json:"customer_address,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
}
