package contract

import (
	"context"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id uuid.UUID) error // soft delete
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SocialAccountRepository interface {
	Create(ctx context.Context, account *entity.SocialAccount) error
	Update(ctx context.Context, account *entity.SocialAccount) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SocialAccount, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SocialAccount, error)
}
