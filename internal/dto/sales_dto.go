package dto

import (
	"github.com/google/uuid"
)

type ChatRequest struct {
	ProjectId      uuid.UUID  `json:"project_id" validate:"required"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	CustomerId     *uuid.UUID `json:"customer_id,omitempty"`
	Message        string     `json:"message" validate:"required"`
	// History, when present, replaces the stored conversation log as the
	// prompt context for this turn.
	History []ChatMessageDTO `json:"history,omitempty" validate:"dive"`
}

// ProductImagesDTO is one product's image set attached to a reply.
type ProductImagesDTO struct {
	ProductId uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Images    []string  `json:"images"`
}

type ChatResponse struct {
	ConversationId uuid.UUID          `json:"conversation_id"`
	Reply          string             `json:"reply"`
	Images         []ProductImagesDTO `json:"images,omitempty"`
	OrderId        *uuid.UUID         `json:"order_id,omitempty"`
}

type WidgetChatRequest struct {
	ProjectId   uuid.UUID `json:"project_id" validate:"required"`
	SessionId   string    `json:"session_id,omitempty"`
	Message     string    `json:"message" validate:"required"`
	VisitorName string    `json:"visitor_name,omitempty"`
}

type WidgetChatResponse struct {
	SessionId string             `json:"session_id"`
	Reply     string             `json:"reply"`
	Images    []ProductImagesDTO `json:"images,omitempty"`
}
