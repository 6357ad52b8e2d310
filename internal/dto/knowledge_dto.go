package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProjectId is deliberately not `required`: the zero uuid is the explicit
// global scope used for platform-wide snippets.
type CreateKnowledgeRequest struct {
	ProjectId uuid.UUID `json:"project_id"`
	Category  string    `json:"category" validate:"required"`
	Title     string    `json:"title"`
	Content   string    `json:"content" validate:"required"`
	Priority  int       `json:"priority"`
	IsActive  *bool     `json:"is_active,omitempty"`
}

type UpdateKnowledgeRequest struct {
	Id       uuid.UUID
	Category string `json:"category" validate:"required"`
	Title    string `json:"title"`
	Content  string `json:"content" validate:"required"`
	Priority int    `json:"priority"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type KnowledgeResponse struct {
	Id        uuid.UUID  `json:"id"`
	ProjectId uuid.UUID  `json:"project_id"`
	Category  string     `json:"category"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Priority  int        `json:"priority"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TrainerChatRequest drives the admin knowledge-trainer chat. The model may
// answer with a save trigger, in which case the snippet is persisted.
type TrainerChatRequest struct {
	ProjectId uuid.UUID        `json:"project_id"`
	Message   string           `json:"message" validate:"required"`
	History   []ChatMessageDTO `json:"history,omitempty"`
}

type TrainerChatResponse struct {
	Reply          string     `json:"reply"`
	Saved          bool       `json:"saved"`
	SavedSnippetId *uuid.UUID `json:"saved_snippet_id,omitempty"`
}

type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}
