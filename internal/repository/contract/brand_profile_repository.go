package contract

import (
	"context"

	"ai-sales-be/internal/entity"

	"github.com/google/uuid"
)

type BrandProfileRepository interface {
	// Upsert creates or replaces the project's single brand profile.
	Upsert(ctx context.Context, profile *entity.BrandProfile) error
	FindByProjectId(ctx context.Context, projectId uuid.UUID) (*entity.BrandProfile, error)
	Delete(ctx context.Context, projectId uuid.UUID) error
}
