package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeOrderCreated     = "ORDER_CREATED"
	TypeLeadScoreChanged = "LEAD_SCORE_CHANGED"
	TypeResearchUpdated  = "RESEARCH_UPDATED"
)

// NewOrderCreatedEvent is published after an order row is committed.
func NewOrderCreatedEvent(orderId, projectId uuid.UUID, customerId *uuid.UUID, totalAmount float64) Event {
	data := map[string]interface{}{
		"order_id":     orderId.String(),
		"project_id":   projectId.String(),
		"total_amount": totalAmount,
	}
	if customerId != nil {
		data["customer_id"] = customerId.String()
	}
	return BaseEvent{
		Type:       TypeOrderCreated,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// NewLeadScoreChangedEvent records a lead score upgrade. Scores only move
// upward, so old/new always differ when this fires.
func NewLeadScoreChangedEvent(customerId, projectId uuid.UUID, oldScore, newScore string) Event {
	return BaseEvent{
		Type: TypeLeadScoreChanged,
		Data: map[string]interface{}{
			"customer_id": customerId.String(),
			"project_id":  projectId.String(),
			"old_score":   oldScore,
			"new_score":   newScore,
		},
		OccurredAt: time.Now(),
	}
}

// NewResearchUpdatedEvent fires when a project's research profile is
// regenerated.
func NewResearchUpdatedEvent(projectId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeResearchUpdated,
		Data: map[string]interface{}{
			"project_id": projectId.String(),
		},
		OccurredAt: time.Now(),
	}
}
