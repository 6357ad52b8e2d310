package mapper

import (
	"time"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"

	"gorm.io/gorm"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Product{
		Id:          p.Id,
		ProjectId:   p.ProjectId,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Features:    jsonToStrings(p.Features),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		Images:      jsonToStrings(p.Images),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   optionalTime(p.UpdatedAt),
		DeletedAt:   deletedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}

	return &model.Product{
		Id:          p.Id,
		ProjectId:   p.ProjectId,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Features:    stringsToJSON(p.Features),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		Images:      stringsToJSON(p.Images),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   timeOrZero(p.UpdatedAt),
		DeletedAt:   deletedAt,
	}
}
