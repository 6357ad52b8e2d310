package entity

import (
	"time"

	"github.com/google/uuid"
)

// GlobalKnowledgeScope is the explicit project id of platform-wide snippets.
// Tenant scope is a required field on every snippet; uuid.Nil marks the
// shared defaults authored by the platform operator.
var GlobalKnowledgeScope = uuid.Nil

// KnowledgeSnippet is an operator-authored instructional text fragment.
// Priority orders aggregation output; it never filters.
type KnowledgeSnippet struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	Category  string
	Title     string
	Content   string
	IsActive  bool
	Priority  int
	CreatedAt time.Time
	UpdatedAt *time.Time
}
