package contract

import (
	"context"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, snippet *entity.KnowledgeSnippet) error
	Update(ctx context.Context, snippet *entity.KnowledgeSnippet) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeSnippet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeSnippet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
