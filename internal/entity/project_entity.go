package entity

import (
	"time"

	"github.com/google/uuid"
)

type AiTone string
type ProjectStatus string

const (
	AiToneFriendly     AiTone = "friendly"
	AiToneProfessional AiTone = "professional"
	AiToneCasual       AiTone = "casual"

	ProjectStatusActive ProjectStatus = "active"
	ProjectStatusPaused ProjectStatus = "paused"
)

// Project is one business account (tenant) hosted on the platform.
type Project struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Name        string
	Industry    string
	Description string
	AiName      string
	AiTone      AiTone
	Status      ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// SocialAccount binds a connected messaging page to a project. The OAuth
// flow that populates it lives outside this service.
type SocialAccount struct {
	Id          uuid.UUID
	ProjectId   uuid.UUID
	Platform    string // "facebook" | "instagram"
	PageId      string
	PageName    string
	AccessToken string
	IsActive    bool
	ConnectedAt time.Time
}
