package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:text;not null"`
	Industry    string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	AiName      string    `gorm:"type:text;not null;default:'Assistant'"`
	AiTone      string    `gorm:"type:varchar(20);not null;default:'friendly'"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Project) TableName() string {
	return "projects"
}

type SocialAccount struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Platform    string    `gorm:"type:varchar(20);not null"`
	PageId      string    `gorm:"type:text;not null;uniqueIndex"`
	PageName    string    `gorm:"type:text"`
	AccessToken string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
	ConnectedAt time.Time `gorm:"autoCreateTime"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
