package mapper

import (
	"encoding/json"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var messages []entity.Message
	if len(c.Messages) > 0 {
		// Tolerate malformed legacy logs; an unreadable log reads as empty.
		_ = json.Unmarshal(c.Messages, &messages)
	}

	return &entity.Conversation{
		Id:                     c.Id,
		ProjectId:              c.ProjectId,
		CustomerId:             c.CustomerId,
		Platform:               c.Platform,
		PlatformConversationId: c.PlatformConversationId,
		Status:                 entity.ConversationStatus(c.Status),
		AiEnabled:              c.AiEnabled,
		Messages:               messages,
		MessageCount:           c.MessageCount,
		LastMessageAt:          c.LastMessageAt,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              optionalTime(c.UpdatedAt),
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	messages := c.Messages
	if messages == nil {
		messages = []entity.Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		data = []byte("[]")
	}

	return &model.Conversation{
		Id:                     c.Id,
		ProjectId:              c.ProjectId,
		CustomerId:             c.CustomerId,
		Platform:               c.Platform,
		PlatformConversationId: c.PlatformConversationId,
		Status:                 string(c.Status),
		AiEnabled:              c.AiEnabled,
		Messages:               datatypes.JSON(data),
		MessageCount:           c.MessageCount,
		LastMessageAt:          c.LastMessageAt,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              timeOrZero(c.UpdatedAt),
	}
}
