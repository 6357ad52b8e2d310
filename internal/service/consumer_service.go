package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains engagement messages and applies the lead
// classification rules off the hot path: a customer who keeps talking
// becomes warm once the conversation is long enough.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	eventBus   IEventBus
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventBus IEventBus,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		eventBus:   eventBus,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEngagementMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal engagement message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: payload.CustomerId})
	if err != nil {
		log.Printf("[ERROR] Failed to get customer %s: %v", payload.CustomerId, err)
		msg.Nack()
		return
	}
	if customer == nil {
		msg.Ack() // Customer deleted? Ack.
		return
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		log.Printf("[ERROR] Failed to get conversation %s: %v", payload.ConversationId, err)
		msg.Nack()
		return
	}

	now := time.Now()
	customer.LastInteractionAt = &now

	oldScore := customer.LeadScore
	if conversation != nil &&
		conversation.MessageCount >= constant.EngagementWarmThreshold &&
		!customer.LeadScore.AtLeast(entity.LeadScoreWarm) {
		customer.LeadScore = entity.LeadScoreWarm
	}

	if err := uow.CustomerRepository().Update(ctx, customer); err != nil {
		log.Printf("[ERROR] Failed to update customer %s: %v", customer.Id, err)
		msg.Nack()
		return
	}

	if customer.LeadScore != oldScore && cs.eventBus != nil {
		event := events.NewLeadScoreChangedEvent(customer.Id, customer.ProjectId, string(oldScore), string(customer.LeadScore))
		if err := cs.eventBus.Publish(ctx, event); err != nil {
			// Score change is already durable; the event is best effort.
			log.Printf("[WARN] Failed to publish lead score event: %v", err)
		}
	}

	msg.Ack()
}
