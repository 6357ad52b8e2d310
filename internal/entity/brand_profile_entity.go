package entity

import (
	"time"

	"github.com/google/uuid"
)

// BrandProfile is optional; at most one per project. When absent the agent
// falls back to Project.Description alone.
type BrandProfile struct {
	Id               uuid.UUID
	ProjectId        uuid.UUID
	Story            string
	Voice            string
	TargetAudience   string
	WebsiteURL       string
	SellingPoints    []string
	Greetings        []string
	ForbiddenWords   []string
	PreferredPhrases []string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
