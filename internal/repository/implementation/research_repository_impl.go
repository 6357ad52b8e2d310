package implementation

import (
	"context"
	"errors"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/mapper"
	"ai-sales-be/internal/model"
	"ai-sales-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResearchRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResearchMapper
}

func NewResearchRepository(db *gorm.DB) contract.ResearchRepository {
	return &ResearchRepositoryImpl{
		db:     db,
		mapper: mapper.NewResearchMapper(),
	}
}

func (r *ResearchRepositoryImpl) Upsert(ctx context.Context, profile *entity.ResearchProfile) error {
	m, err := r.mapper.ToModel(profile)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"document", "last_research_at", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	saved, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*profile = *saved
	return nil
}

func (r *ResearchRepositoryImpl) FindByProjectId(ctx context.Context, projectId uuid.UUID) (*entity.ResearchProfile, error) {
	var m model.ResearchProfile
	err := r.db.WithContext(ctx).Where("project_id = ?", projectId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}
