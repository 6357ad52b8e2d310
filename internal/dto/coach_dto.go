package dto

import "github.com/google/uuid"

// CoachChatRequest is the tenant operator's advisory chat: sales coaching
// about their own business, not a customer-facing conversation.
type CoachChatRequest struct {
	ProjectId uuid.UUID        `json:"project_id" validate:"required"`
	Message   string           `json:"message" validate:"required"`
	History   []ChatMessageDTO `json:"history,omitempty" validate:"dive"`
}

type CoachChatResponse struct {
	Reply string `json:"reply"`
}
