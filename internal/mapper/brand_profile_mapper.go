package mapper

import (
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/model"
)

type BrandProfileMapper struct{}

func NewBrandProfileMapper() *BrandProfileMapper {
	return &BrandProfileMapper{}
}

func (m *BrandProfileMapper) ToEntity(b *model.BrandProfile) *entity.BrandProfile {
	if b == nil {
		return nil
	}
	return &entity.BrandProfile{
		Id:               b.Id,
		ProjectId:        b.ProjectId,
		Story:            b.Story,
		Voice:            b.Voice,
		TargetAudience:   b.TargetAudience,
		WebsiteURL:       b.WebsiteURL,
		SellingPoints:    jsonToStrings(b.SellingPoints),
		Greetings:        jsonToStrings(b.Greetings),
		ForbiddenWords:   jsonToStrings(b.ForbiddenWords),
		PreferredPhrases: jsonToStrings(b.PreferredPhrases),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        optionalTime(b.UpdatedAt),
	}
}

func (m *BrandProfileMapper) ToModel(b *entity.BrandProfile) *model.BrandProfile {
	if b == nil {
		return nil
	}
	return &model.BrandProfile{
		Id:               b.Id,
		ProjectId:        b.ProjectId,
		Story:            b.Story,
		Voice:            b.Voice,
		TargetAudience:   b.TargetAudience,
		WebsiteURL:       b.WebsiteURL,
		SellingPoints:    stringsToJSON(b.SellingPoints),
		Greetings:        stringsToJSON(b.Greetings),
		ForbiddenWords:   stringsToJSON(b.ForbiddenWords),
		PreferredPhrases: stringsToJSON(b.PreferredPhrases),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        timeOrZero(b.UpdatedAt),
	}
}
