package entity

import (
	"strings"
	"time"

	"ai-sales-be/internal/constant"

	"github.com/google/uuid"
)

type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
	ConversationStatusClosed ConversationStatus = "closed"
)

// Message is one entry of a conversation's append-only log.
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Conversation is the message log between one customer and one project's
// agent on one platform. Lifecycle is an explicit active/closed machine;
// the channel adapters only ever open a conversation when no active one
// exists for the pair.
type Conversation struct {
	Id                     uuid.UUID
	ProjectId              uuid.UUID
	CustomerId             uuid.UUID
	Platform               string
	PlatformConversationId string
	Status                 ConversationStatus
	AiEnabled              bool
	Messages               []Message
	MessageCount           int
	LastMessageAt          *time.Time
	CreatedAt              time.Time
	UpdatedAt              *time.Time
}

// Append adds entries to the log and recomputes the denormalized fields.
func (c *Conversation) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
	c.MessageCount = len(c.Messages)
	if n := len(c.Messages); n > 0 && c.Messages[n-1].CreatedAt != nil {
		c.LastMessageAt = c.Messages[n-1].CreatedAt
	}
}

// ImagesAlreadySent reports whether any assistant turn in this conversation
// carried the image-send marker.
func (c *Conversation) ImagesAlreadySent() bool {
	for _, m := range c.Messages {
		if m.Role == constant.MessageRoleAssistant && strings.Contains(m.Content, strings.TrimSpace(constant.ImageSentMarker)) {
			return true
		}
	}
	return false
}
