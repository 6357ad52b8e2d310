package service

import (
	"context"
	"net/http"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/logger"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/channel/meta"

	"github.com/google/uuid"
)

type IConversationService interface {
	GetAll(ctx context.Context, projectId uuid.UUID) ([]*dto.ConversationListItemResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowConversationResponse, error)
	ToggleAi(ctx context.Context, req *dto.AiToggleRequest) error
	Reply(ctx context.Context, req *dto.OperatorReplyRequest) error
	Close(ctx context.Context, id uuid.UUID) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	metaClient *meta.Client
	logger     logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	metaClient *meta.Client,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		metaClient: metaClient,
		logger:     log,
	}
}

func (s *conversationService) GetAll(ctx context.Context, projectId uuid.UUID) ([]*dto.ConversationListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "last_message_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	customerIds := make([]uuid.UUID, 0, len(conversations))
	for _, c := range conversations {
		if c.CustomerId != uuid.Nil {
			customerIds = append(customerIds, c.CustomerId)
		}
	}

	names := make(map[uuid.UUID]*string)
	if len(customerIds) > 0 {
		customers, err := uow.CustomerRepository().FindAll(ctx, specification.ByIDs{IDs: customerIds})
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			names[c.Id] = c.Name
		}
	}

	result := make([]*dto.ConversationListItemResponse, len(conversations))
	for i, c := range conversations {
		result[i] = &dto.ConversationListItemResponse{
			Id:            c.Id,
			CustomerId:    c.CustomerId,
			CustomerName:  names[c.CustomerId],
			Platform:      c.Platform,
			Status:        string(c.Status),
			AiEnabled:     c.AiEnabled,
			MessageCount:  c.MessageCount,
			LastMessageAt: c.LastMessageAt,
		}
	}
	return result, nil
}

func (s *conversationService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowConversationResponse, error) {
	conversation, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.ConversationMessageDTO, len(conversation.Messages))
	for i, m := range conversation.Messages {
		messages[i] = dto.ConversationMessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}

	return &dto.ShowConversationResponse{
		Id:         conversation.Id,
		ProjectId:  conversation.ProjectId,
		CustomerId: conversation.CustomerId,
		Platform:   conversation.Platform,
		Status:     string(conversation.Status),
		AiEnabled:  conversation.AiEnabled,
		Messages:   messages,
		CreatedAt:  conversation.CreatedAt,
	}, nil
}

func (s *conversationService) ToggleAi(ctx context.Context, req *dto.AiToggleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.mustFind(ctx, req.Id)
	if err != nil {
		return err
	}

	conversation.AiEnabled = req.Enabled
	return uow.ConversationRepository().Update(ctx, conversation)
}

// Reply stores a manual operator message and, for connected platforms,
// delivers it through the page. The orchestrator is not involved.
func (s *conversationService) Reply(ctx context.Context, req *dto.OperatorReplyRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.mustFind(ctx, req.Id)
	if err != nil {
		return err
	}
	if conversation.Status != entity.ConversationStatusActive {
		return serverutils.NewAppError(serverutils.CodeInvalidState, http.StatusConflict, "Conversation is closed")
	}

	now := time.Now()
	conversation.Append(entity.Message{
		Role:      constant.MessageRoleAssistant,
		Content:   req.Message,
		CreatedAt: &now,
	})
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	if conversation.Platform != "facebook" && conversation.Platform != "instagram" {
		return nil
	}

	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: conversation.CustomerId})
	if err != nil {
		return err
	}
	account, err := uow.SocialAccountRepository().FindOne(ctx,
		specification.ByProjectID{ProjectID: conversation.ProjectId},
		specification.FilterBy{Field: "platform", Value: conversation.Platform},
		specification.ActiveOnly{},
	)
	if err != nil {
		return err
	}
	if customer == nil || account == nil {
		s.logger.Warn(constant.ModuleConversation, "manual reply stored but not delivered", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
		})
		return nil
	}

	if err := s.metaClient.SendMessage(ctx, account.AccessToken, customer.PlatformUserId, req.Message); err != nil {
		// Stored is stored; delivery failure surfaces in the log only.
		s.logger.Error(constant.ModuleConversation, "manual reply delivery failed", map[string]interface{}{
			"conversation_id": conversation.Id.String(),
			"error":           err.Error(),
		})
	}
	return nil
}

func (s *conversationService) Close(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.mustFind(ctx, id)
	if err != nil {
		return err
	}

	conversation.Status = entity.ConversationStatusClosed
	return uow.ConversationRepository().Update(ctx, conversation)
}

func (s *conversationService) mustFind(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Conversation not found")
	}
	return conversation, nil
}
