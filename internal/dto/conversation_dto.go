package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationListItemResponse struct {
	Id            uuid.UUID  `json:"id"`
	CustomerId    uuid.UUID  `json:"customer_id"`
	CustomerName  *string    `json:"customer_name,omitempty"`
	Platform      string     `json:"platform"`
	Status        string     `json:"status"`
	AiEnabled     bool       `json:"ai_enabled"`
	MessageCount  int        `json:"message_count"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

type ConversationMessageDTO struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type ShowConversationResponse struct {
	Id         uuid.UUID                `json:"id"`
	ProjectId  uuid.UUID                `json:"project_id"`
	CustomerId uuid.UUID                `json:"customer_id"`
	Platform   string                   `json:"platform"`
	Status     string                   `json:"status"`
	AiEnabled  bool                     `json:"ai_enabled"`
	Messages   []ConversationMessageDTO `json:"messages"`
	CreatedAt  time.Time                `json:"created_at"`
}

type AiToggleRequest struct {
	Id      uuid.UUID
	Enabled bool `json:"enabled"`
}

// OperatorReplyRequest is a manual human reply; it bypasses the agent and
// is delivered to the customer's channel directly.
type OperatorReplyRequest struct {
	Id      uuid.UUID
	Message string `json:"message" validate:"required"`
}
