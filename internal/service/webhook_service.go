package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/logger"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/agent/convlock"
	"ai-sales-be/pkg/agent/prompt"
	"ai-sales-be/pkg/channel/meta"

	"github.com/google/uuid"
)

type IWebhookService interface {
	// Verify implements the hub.challenge handshake; it returns the
	// challenge string to echo back.
	Verify(mode, token, challenge string) (string, error)
	HandleEvent(ctx context.Context, payload *dto.MetaWebhookPayload)
}

type webhookService struct {
	uowFactory       unitofwork.RepositoryFactory
	agentService     ISalesAgentService
	orderService     IOrderService
	publisherService IPublisherService
	metaClient       *meta.Client
	verifyToken      string
	locks            *convlock.Locker
	logger           logger.ILogger
}

func NewWebhookService(
	uowFactory unitofwork.RepositoryFactory,
	agentService ISalesAgentService,
	orderService IOrderService,
	publisherService IPublisherService,
	metaClient *meta.Client,
	verifyToken string,
	locks *convlock.Locker,
	log logger.ILogger,
) IWebhookService {
	return &webhookService{
		uowFactory:       uowFactory,
		agentService:     agentService,
		orderService:     orderService,
		publisherService: publisherService,
		metaClient:       metaClient,
		verifyToken:      verifyToken,
		locks:            locks,
		logger:           log,
	}
}

func (s *webhookService) Verify(mode, token, challenge string) (string, error) {
	if mode == "subscribe" && token == s.verifyToken {
		return challenge, nil
	}
	return "", serverutils.NewAppError(serverutils.CodeForbidden, http.StatusForbidden, "Verification failed")
}

// HandleEvent processes a webhook delivery. Per-event failures are logged
// and swallowed: Meta retries whole deliveries, and one broken event must
// not block its batch siblings.
func (s *webhookService) HandleEvent(ctx context.Context, payload *dto.MetaWebhookPayload) {
	if payload.Object != "page" && payload.Object != "instagram" {
		return
	}

	platform := "facebook"
	if payload.Object == "instagram" {
		platform = "instagram"
	}

	for _, entry := range payload.Entry {
		for _, event := range entry.Messaging {
			if err := s.handleMessaging(ctx, platform, &event); err != nil {
				s.logger.Error(constant.ModuleWebhook, "messaging event failed", map[string]interface{}{
					"page_id": entry.Id,
					"error":   err.Error(),
				})
			}
		}
		for _, change := range entry.Changes {
			if change.Field != "feed" {
				continue
			}
			if err := s.handleComment(ctx, entry.Id, &change.Value); err != nil {
				s.logger.Error(constant.ModuleWebhook, "comment event failed", map[string]interface{}{
					"page_id": entry.Id,
					"error":   err.Error(),
				})
			}
		}
	}
}

func (s *webhookService) handleMessaging(ctx context.Context, platform string, event *dto.MetaMessagingEvent) error {
	if event.Message == nil || event.Message.Text == "" || event.Sender.Id == "" {
		return nil
	}
	senderId := event.Sender.Id
	pageId := event.Recipient.Id
	text := event.Message.Text

	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.SocialAccountRepository().FindOne(ctx,
		specification.ByPageID{PageID: pageId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return err
	}
	if account == nil {
		s.logger.Warn(constant.ModuleWebhook, "no social account for page", map[string]interface{}{"page_id": pageId})
		return nil
	}
	projectId := account.ProjectId

	customer, err := s.findOrCreateCustomer(ctx, projectId, platform, senderId, account.AccessToken)
	if err != nil {
		return err
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.ByCustomerID{CustomerID: customer.Id},
		specification.ByStatus{Status: string(entity.ConversationStatusActive)},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		conversation = &entity.Conversation{
			Id:                     uuid.New(),
			ProjectId:              projectId,
			CustomerId:             customer.Id,
			Platform:               platform,
			PlatformConversationId: senderId,
			Status:                 entity.ConversationStatusActive,
			AiEnabled:              true,
			Messages:               []entity.Message{},
			CreatedAt:              time.Now(),
		}
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			return err
		}
	}

	// Meta redelivers; two copies of the same message must not interleave
	// their read-decide-append cycles on one conversation.
	lockKey := conversation.Id.String()
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	// Reload inside the lock so concurrent turns see each other's appends.
	fresh, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversation.Id})
	if err != nil {
		return err
	}
	if fresh != nil {
		conversation = fresh
	}

	now := time.Now()

	// AI off means the operator has taken over: store and stay silent.
	if !conversation.AiEnabled {
		conversation.Append(entity.Message{Role: constant.MessageRoleUser, Content: text, CreatedAt: &now})
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			return err
		}
		customer.LastInteractionAt = &now
		return uow.CustomerRepository().Update(ctx, customer)
	}

	turn, err := s.agentService.RunTurn(ctx, TurnInput{
		ProjectId:       projectId,
		History:         conversation.Messages,
		Message:         text,
		Customer:        customerToPromptInfo(customer),
		KnowledgeLimit:  constant.KnowledgeLimitDefault,
		ImagesAllowed:   !conversation.ImagesAlreadySent(),
		OrderingAllowed: true,
	})
	if err != nil {
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) && appErr.Code == serverutils.CodeNoResearch {
			// Untrained tenant still greets; the operator follows up by hand.
			return s.metaClient.SendMessage(ctx, account.AccessToken, senderId, constant.UntrainedWebhookReply)
		}
		return err
	}

	stored := turn.Reply
	if len(turn.ImageProducts) > 0 {
		stored += constant.ImageSentMarker
	}
	conversation.Append(
		entity.Message{Role: constant.MessageRoleUser, Content: text, CreatedAt: &now},
		entity.Message{Role: constant.MessageRoleAssistant, Content: stored, CreatedAt: &now},
	)
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	if turn.OrderRequest != nil {
		customerId := customer.Id
		if _, err := s.orderService.CreateFromAgent(ctx, projectId, &customerId, &conversation.Id, turn.OrderRequest); err != nil {
			s.logger.Error(constant.ModuleWebhook, "agent order creation failed", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	if err := s.metaClient.SendMessage(ctx, account.AccessToken, senderId, turn.Reply); err != nil {
		return err
	}

	sent := 0
	for _, product := range turn.ImageProducts {
		for _, imageURL := range product.Images {
			if sent == constant.MaxWebhookImageSends {
				break
			}
			if err := s.metaClient.SendImage(ctx, account.AccessToken, senderId, imageURL); err != nil {
				s.logger.Warn(constant.ModuleWebhook, "image send failed", map[string]interface{}{"error": err.Error()})
				continue
			}
			sent++
		}
	}

	if s.publisherService != nil {
		if err := s.publisherService.PublishEngagement(ctx, &dto.PublishEngagementMessage{
			ProjectId:      projectId,
			CustomerId:     customer.Id,
			ConversationId: conversation.Id,
		}); err != nil {
			s.logger.Warn(constant.ModuleWebhook, "failed to publish engagement", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func (s *webhookService) handleComment(ctx context.Context, pageId string, value *dto.MetaChangeValue) error {
	if value.Item != "comment" || value.Verb != "add" {
		return nil
	}
	// The page commenting on its own post must not trigger a reply loop.
	if value.From.Id == pageId {
		return nil
	}
	if value.CommentId == "" || value.Message == "" || value.From.Id == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.SocialAccountRepository().FindOne(ctx,
		specification.ByPageID{PageID: pageId},
		specification.FilterBy{Field: "platform", Value: "facebook"},
		specification.ActiveOnly{},
	)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}

	customerInfo := &prompt.CustomerInfo{Name: value.From.Name, LeadScore: string(entity.LeadScoreWarm)}

	turn, err := s.agentService.RunTurn(ctx, TurnInput{
		ProjectId:       account.ProjectId,
		History:         nil, // a comment is a fresh exchange
		Message:         value.Message,
		Customer:        customerInfo,
		KnowledgeLimit:  constant.KnowledgeLimitComment,
		ImagesAllowed:   false,
		OrderingAllowed: false,
	})
	if err != nil {
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) && appErr.Code == serverutils.CodeNoResearch {
			return nil
		}
		return err
	}

	if err := s.metaClient.ReplyToComment(ctx, account.AccessToken, value.CommentId, turn.Reply); err != nil {
		return err
	}
	if len(turn.Reply) > 100 {
		if err := s.metaClient.ReplyToComment(ctx, account.AccessToken, value.CommentId, constant.MessengerInviteSuffix); err != nil {
			s.logger.Warn(constant.ModuleWebhook, "messenger invite failed", map[string]interface{}{"error": err.Error()})
		}
	}

	// A commenter is already an engaged lead.
	existing, err := uow.CustomerRepository().FindOne(ctx,
		specification.ByProjectID{ProjectID: account.ProjectId},
		specification.ByPlatformUser{Platform: "facebook", PlatformUserID: value.From.Id},
	)
	if err != nil {
		return err
	}
	if existing == nil {
		customer := &entity.Customer{
			Id:             uuid.New(),
			ProjectId:      account.ProjectId,
			Platform:       "facebook",
			PlatformUserId: value.From.Id,
			Name:           optionalString(value.From.Name),
			LeadScore:      entity.LeadScoreWarm,
			FirstContactAt: time.Now(),
		}
		if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
			return err
		}
	}

	return nil
}

func (s *webhookService) findOrCreateCustomer(ctx context.Context, projectId uuid.UUID, platform, platformUserId, accessToken string) (*entity.Customer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	customer, err := uow.CustomerRepository().FindOne(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.ByPlatformUser{Platform: platform, PlatformUserID: platformUserId},
	)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	var name *string
	if profile, err := s.metaClient.GetUserProfile(ctx, accessToken, platformUserId); err == nil && profile.Name != "" {
		name = &profile.Name
	} else if err != nil {
		// Profile backfill is best effort.
		s.logger.Warn(constant.ModuleWebhook, "could not fetch user profile", map[string]interface{}{"error": err.Error()})
	}

	customer = &entity.Customer{
		Id:             uuid.New(),
		ProjectId:      projectId,
		Platform:       platform,
		PlatformUserId: platformUserId,
		Name:           name,
		LeadScore:      entity.LeadScoreCold,
		FirstContactAt: time.Now(),
	}
	if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
