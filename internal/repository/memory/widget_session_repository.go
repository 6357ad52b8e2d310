package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// WidgetSession ties an anonymous web-widget visitor to the customer and
// conversation rows created on their first message.
type WidgetSession struct {
	ID             string
	ProjectId      uuid.UUID
	CustomerId     uuid.UUID
	ConversationId uuid.UUID
	CreatedAt      time.Time
}

type WidgetSessionRepository struct {
	cache *cache.Cache
}

func NewWidgetSessionRepository() *WidgetSessionRepository {
	// Widget visitors are anonymous, so sessions expire after an hour of
	// inactivity and expired entries are purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &WidgetSessionRepository{
		cache: c,
	}
}

func (r *WidgetSessionRepository) Save(session *WidgetSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *WidgetSessionRepository) Get(sessionID string) (*WidgetSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*WidgetSession), true
	}
	return nil, false
}

func (r *WidgetSessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
