package mapper

import (
	"encoding/json"
	"fmt"

	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"

	"gorm.io/datatypes"
)

type ResearchMapper struct{}

func NewResearchMapper() *ResearchMapper {
	return &ResearchMapper{}
}

// ToEntity fails on an undecodable document: a research profile that does
// not conform to the schema must never flow into a sales turn.
func (m *ResearchMapper) ToEntity(r *model.ResearchProfile) (*entity.ResearchProfile, error) {
	if r == nil {
		return nil, nil
	}

	var doc entity.ResearchDocument
	if err := json.Unmarshal(r.Document, &doc); err != nil {
		return nil, fmt.Errorf("decode research document %s: %w", r.Id, err)
	}

	return &entity.ResearchProfile{
		Id:             r.Id,
		ProjectId:      r.ProjectId,
		Document:       doc,
		LastResearchAt: r.LastResearchAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      optionalTime(r.UpdatedAt),
	}, nil
}

func (m *ResearchMapper) ToModel(r *entity.ResearchProfile) (*model.ResearchProfile, error) {
	if r == nil {
		return nil, nil
	}

	data, err := json.Marshal(r.Document)
	if err != nil {
		return nil, fmt.Errorf("encode research document: %w", err)
	}

	return &model.ResearchProfile{
		Id:             r.Id,
		ProjectId:      r.ProjectId,
		Document:       datatypes.JSON(data),
		LastResearchAt: r.LastResearchAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      timeOrZero(r.UpdatedAt),
	}, nil
}
