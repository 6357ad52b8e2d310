package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product belongs to exactly one project. A nil Price means "price on
// request". Inactive products are never offered by the sales agent.
type Product struct {
	Id          uuid.UUID
	ProjectId   uuid.UUID
	Name        string
	Description string
	Price       *float64
	Features    []string
	Stock       int
	IsActive    bool
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// HasImages reports whether the product carries at least one image asset.
func (p *Product) HasImages() bool {
	return len(p.Images) > 0
}
