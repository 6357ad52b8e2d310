package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Order struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerId      *uuid.UUID     `gorm:"type:uuid;index"`
	ConversationId  *uuid.UUID     `gorm:"type:uuid"`
	Items           datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	TotalAmount     float64        `gorm:"type:numeric;not null;default:0"`
	CustomerName    *string        `gorm:"type:text"`
	CustomerPhone   *string        `gorm:"type:text"`
	CustomerAddress *string        `gorm:"type:text"`
	Notes           *string        `gorm:"type:text"`
	Status          string         `gorm:"type:varchar(15);not null;default:'pending';index"`
	StatusChangedAt time.Time      `gorm:"not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
