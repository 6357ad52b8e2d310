package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BrandProfile struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Story            string         `gorm:"type:text"`
	Voice            string         `gorm:"type:text"`
	TargetAudience   string         `gorm:"type:text"`
	WebsiteURL       string         `gorm:"type:text"`
	SellingPoints    datatypes.JSON `gorm:"type:jsonb"`
	Greetings        datatypes.JSON `gorm:"type:jsonb"`
	ForbiddenWords   datatypes.JSON `gorm:"type:jsonb"`
	PreferredPhrases datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (BrandProfile) TableName() string {
	return "brand_profiles"
}
