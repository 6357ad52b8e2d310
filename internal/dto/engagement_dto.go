package dto

import "github.com/google/uuid"

// PublishEngagementMessage flows over the in-process bus after every stored
// customer turn; the consumer re-evaluates the customer's lead score.
type PublishEngagementMessage struct {
	ProjectId      uuid.UUID `json:"project_id"`
	CustomerId     uuid.UUID `json:"customer_id"`
	ConversationId uuid.UUID `json:"conversation_id"`
}
