package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetSessionRoundtrip(t *testing.T) {
	repo := NewWidgetSessionRepository()

	session := &WidgetSession{
		ID:             uuid.NewString(),
		ProjectId:      uuid.New(),
		CustomerId:     uuid.New(),
		ConversationId: uuid.New(),
	}
	repo.Save(session)

	got, found := repo.Get(session.ID)
	require.True(t, found)
	assert.Equal(t, session.ConversationId, got.ConversationId)

	repo.Delete(session.ID)
	_, found = repo.Get(session.ID)
	assert.False(t, found)
}

func TestWidgetSessionUnknownID(t *testing.T) {
	repo := NewWidgetSessionRepository()

	got, found := repo.Get("missing")

	assert.False(t, found)
	assert.Nil(t, got)
}
