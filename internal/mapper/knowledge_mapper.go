package mapper

import (
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(k *model.KnowledgeSnippet) *entity.KnowledgeSnippet {
	if k == nil {
		return nil
	}
	return &entity.KnowledgeSnippet{
		Id:        k.Id,
		ProjectId: k.ProjectId,
		Category:  k.Category,
		Title:     k.Title,
		Content:   k.Content,
		IsActive:  k.IsActive,
		Priority:  k.Priority,
		CreatedAt: k.CreatedAt,
		UpdatedAt: optionalTime(k.UpdatedAt),
	}
}

func (m *KnowledgeMapper) ToModel(k *entity.KnowledgeSnippet) *model.KnowledgeSnippet {
	if k == nil {
		return nil
	}
	return &model.KnowledgeSnippet{
		Id:        k.Id,
		ProjectId: k.ProjectId,
		Category:  k.Category,
		Title:     k.Title,
		Content:   k.Content,
		IsActive:  k.IsActive,
		Priority:  k.Priority,
		CreatedAt: k.CreatedAt,
		UpdatedAt: timeOrZero(k.UpdatedAt),
	}
}
