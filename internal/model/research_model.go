package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ResearchProfile struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Document       datatypes.JSON `gorm:"type:jsonb;not null"`
	LastResearchAt time.Time      `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (ResearchProfile) TableName() string {
	return "research_profiles"
}
