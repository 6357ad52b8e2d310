package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeadScore string

const (
	LeadScoreCold LeadScore = "cold"
	LeadScoreWarm LeadScore = "warm"
	LeadScoreHot  LeadScore = "hot"
)

// rank orders lead scores for the monotonic-upgrade rule.
func (s LeadScore) rank() int {
	switch s {
	case LeadScoreWarm:
		return 1
	case LeadScoreHot:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether s is already at or above other. Lead scores only
// move upward; there is no automatic decay back to cold.
func (s LeadScore) AtLeast(other LeadScore) bool {
	return s.rank() >= other.rank()
}

// Customer is an end customer of a tenant, unique per
// (project, platform, platform user id).
type Customer struct {
	Id                uuid.UUID
	ProjectId         uuid.UUID
	Platform          string
	PlatformUserId    string
	Name              *string
	Phone             *string
	Email             *string
	LeadScore         LeadScore
	TotalOrders       int
	TotalSpent        float64
	Notes             string
	FirstContactAt    time.Time
	LastInteractionAt *time.Time
}
