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

type BrandProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BrandProfileMapper
}

func NewBrandProfileRepository(db *gorm.DB) contract.BrandProfileRepository {
	return &BrandProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewBrandProfileMapper(),
	}
}

func (r *BrandProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.BrandProfile) error {
	m := r.mapper.ToModel(profile)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"story", "voice", "target_audience", "website_url",
			"selling_points", "greetings", "forbidden_words", "preferred_phrases",
			"updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *BrandProfileRepositoryImpl) FindByProjectId(ctx context.Context, projectId uuid.UUID) (*entity.BrandProfile, error) {
	var m model.BrandProfile
	err := r.db.WithContext(ctx).Where("project_id = ?", projectId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BrandProfileRepositoryImpl) Delete(ctx context.Context, projectId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectId).Delete(&model.BrandProfile{}).Error
}
