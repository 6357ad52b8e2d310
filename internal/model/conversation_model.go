package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Conversation struct {
	Id                     uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId              uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerId             uuid.UUID      `gorm:"type:uuid;not null;index"`
	Platform               string         `gorm:"type:varchar(20);not null"`
	PlatformConversationId string         `gorm:"type:text;index"`
	Status                 string         `gorm:"type:varchar(10);not null;default:'active';index"`
	AiEnabled              bool           `gorm:"not null;default:true"`
	Messages               datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	MessageCount           int            `gorm:"not null;default:0"`
	LastMessageAt          *time.Time
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
