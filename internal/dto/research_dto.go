package dto

import (
	"time"

	"ai-sales-be/internal/entity"

	"github.com/google/uuid"
)

type RunResearchRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
}

type RunResearchResponse struct {
	ProjectId      uuid.UUID               `json:"project_id"`
	Document       entity.ResearchDocument `json:"document"`
	LastResearchAt time.Time               `json:"last_research_at"`
	// Regeneration replaces the document wholesale, including any fields
	// the operator edited by hand since the last run.
	ManualEditsDiscarded bool `json:"manual_edits_discarded"`
}

type ResearchStatusResponse struct {
	ProjectId      uuid.UUID  `json:"project_id"`
	Ready          bool       `json:"ready"`
	LastResearchAt *time.Time `json:"last_research_at,omitempty"`
}
