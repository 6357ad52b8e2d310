package contract

import (
	"context"

	"ai-sales-be/internal/entity"

	"github.com/google/uuid"
)

type ResearchRepository interface {
	// Upsert replaces the project's current research profile wholesale.
	Upsert(ctx context.Context, profile *entity.ResearchProfile) error
	FindByProjectId(ctx context.Context, projectId uuid.UUID) (*entity.ResearchProfile, error)
}
