package entity

import (
	"testing"
	"time"

	"ai-sales-be/internal/constant"

	"github.com/stretchr/testify/assert"
)

func TestConversationAppend(t *testing.T) {
	now := time.Now()
	c := &Conversation{}

	c.Append(
		Message{Role: constant.MessageRoleUser, Content: "Сайн уу", CreatedAt: &now},
		Message{Role: constant.MessageRoleAssistant, Content: "Сайн байна уу!", CreatedAt: &now},
	)

	assert.Equal(t, 2, c.MessageCount)
	assert.Equal(t, &now, c.LastMessageAt)

	later := now.Add(time.Minute)
	c.Append(Message{Role: constant.MessageRoleUser, Content: "Үнэ?", CreatedAt: &later})

	assert.Equal(t, 3, c.MessageCount)
	assert.Equal(t, &later, c.LastMessageAt)
}

func TestImagesAlreadySent(t *testing.T) {
	t.Run("no messages", func(t *testing.T) {
		c := &Conversation{}
		assert.False(t, c.ImagesAlreadySent())
	})

	t.Run("plain assistant reply", func(t *testing.T) {
		c := &Conversation{Messages: []Message{
			{Role: constant.MessageRoleAssistant, Content: "Энэ 25000₮"},
		}}
		assert.False(t, c.ImagesAlreadySent())
	})

	t.Run("marker on assistant reply", func(t *testing.T) {
		c := &Conversation{Messages: []Message{
			{Role: constant.MessageRoleAssistant, Content: "Зургууд энд" + constant.ImageSentMarker},
		}}
		assert.True(t, c.ImagesAlreadySent())
	})

	t.Run("marker text from user does not count", func(t *testing.T) {
		c := &Conversation{Messages: []Message{
			{Role: constant.MessageRoleUser, Content: constant.ImageSentMarker},
		}}
		assert.False(t, c.ImagesAlreadySent())
	})
}

func TestLeadScoreAtLeast(t *testing.T) {
	assert.True(t, LeadScoreHot.AtLeast(LeadScoreWarm))
	assert.True(t, LeadScoreWarm.AtLeast(LeadScoreWarm))
	assert.True(t, LeadScoreWarm.AtLeast(LeadScoreCold))
	assert.False(t, LeadScoreCold.AtLeast(LeadScoreWarm))
	assert.False(t, LeadScoreWarm.AtLeast(LeadScoreHot))
}
