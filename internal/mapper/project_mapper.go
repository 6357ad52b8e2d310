package mapper

import (
	"time"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"

	"gorm.io/gorm"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Project{
		Id:          p.Id,
		UserId:      p.UserId,
		Name:        p.Name,
		Industry:    p.Industry,
		Description: p.Description,
		AiName:      p.AiName,
		AiTone:      entity.AiTone(p.AiTone),
		Status:      entity.ProjectStatus(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   optionalTime(p.UpdatedAt),
		DeletedAt:   deletedAt,
	}
}

func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}

	return &model.Project{
		Id:          p.Id,
		UserId:      p.UserId,
		Name:        p.Name,
		Industry:    p.Industry,
		Description: p.Description,
		AiName:      p.AiName,
		AiTone:      string(p.AiTone),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   timeOrZero(p.UpdatedAt),
		DeletedAt:   deletedAt,
	}
}

func (m *ProjectMapper) SocialAccountToEntity(a *model.SocialAccount) *entity.SocialAccount {
	if a == nil {
		return nil
	}
	return &entity.SocialAccount{
		Id:          a.Id,
		ProjectId:   a.ProjectId,
		Platform:    a.Platform,
		PageId:      a.PageId,
		PageName:    a.PageName,
		AccessToken: a.AccessToken,
		IsActive:    a.IsActive,
		ConnectedAt: a.ConnectedAt,
	}
}

func (m *ProjectMapper) SocialAccountToModel(a *entity.SocialAccount) *model.SocialAccount {
	if a == nil {
		return nil
	}
	return &model.SocialAccount{
		Id:          a.Id,
		ProjectId:   a.ProjectId,
		Platform:    a.Platform,
		PageId:      a.PageId,
		PageName:    a.PageName,
		AccessToken: a.AccessToken,
		IsActive:    a.IsActive,
		ConnectedAt: a.ConnectedAt,
	}
}
