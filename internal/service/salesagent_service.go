package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/logger"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/memory"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/agent/convlock"
	"ai-sales-be/pkg/agent/decision"
	"ai-sales-be/pkg/agent/intent"
	"ai-sales-be/pkg/agent/knowledge"
	"ai-sales-be/pkg/agent/prompt"
	"ai-sales-be/pkg/llm"

	"github.com/google/uuid"
)

// ErrNotTrained is returned when a project has no research profile; the
// error middleware maps its code to a distinguishable client response.
var ErrNotTrained = serverutils.NewAppError(serverutils.CodeNoResearch, http.StatusBadRequest,
	"Project has no research profile yet. Run research first.")

// TurnInput is one agent turn, channel-agnostic. The channel adapters fill
// it from whatever state they track.
type TurnInput struct {
	ProjectId       uuid.UUID
	History         []entity.Message
	Message         string
	Customer        *prompt.CustomerInfo
	KnowledgeLimit  int
	ImagesAllowed   bool
	OrderingAllowed bool
}

// TurnDecision is the resolved outcome of one turn.
type TurnDecision struct {
	Reply         string
	ImageProducts []*entity.Product
	OrderRequest  *decision.OrderRequest
	Fallback      bool
}

type ISalesAgentService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	WidgetChat(ctx context.Context, req *dto.WidgetChatRequest) (*dto.WidgetChatResponse, error)
	// RunTurn is the shared read-model-decide core without persistence;
	// the webhook adapter drives it directly.
	RunTurn(ctx context.Context, in TurnInput) (*TurnDecision, error)
}

type salesAgentService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	researchService  IResearchService
	orderService     IOrderService
	publisherService IPublisherService
	sessions         *memory.WidgetSessionRepository
	classifier       intent.Classifier
	locks            *convlock.Locker
	logger           logger.ILogger
}

func NewSalesAgentService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	researchService IResearchService,
	orderService IOrderService,
	publisherService IPublisherService,
	sessions *memory.WidgetSessionRepository,
	classifier intent.Classifier,
	locks *convlock.Locker,
	log logger.ILogger,
) ISalesAgentService {
	return &salesAgentService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		researchService:  researchService,
		orderService:     orderService,
		publisherService: publisherService,
		sessions:         sessions,
		classifier:       classifier,
		locks:            locks,
		logger:           log,
	}
}

func (s *salesAgentService) RunTurn(ctx context.Context, in TurnInput) (*TurnDecision, error) {
	profile, err := s.researchService.GetProfile(ctx, in.ProjectId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotTrained
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: in.ProjectId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}

	limit := in.KnowledgeLimit
	if limit <= 0 {
		limit = constant.KnowledgeLimitDefault
	}
	snippets, err := uow.KnowledgeRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.ProjectOrGlobalScope{ProjectID: in.ProjectId},
		specification.ByCategoryIn{Categories: knowledge.CategoriesFor(knowledge.PurposeSales)},
		specification.OrderBy{Field: "priority", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	knowledgeBlock := knowledge.Aggregate(snippets, limit)

	turnIntent := s.classifier.Classify(in.Message, intentProducts(products))
	var detailProduct *entity.Product
	if turnIntent.MatchedProduct != nil {
		for _, p := range products {
			if p.Id.String() == turnIntent.MatchedProduct.Id {
				detailProduct = p
				break
			}
		}
	}

	messages := prompt.BuildSalesTurn(prompt.SalesTurnInput{
		Research:        &profile.Document,
		History:         in.History,
		Message:         in.Message,
		Customer:        in.Customer,
		KnowledgeBlock:  knowledgeBlock,
		Products:        products,
		ImagesAllowed:   in.ImagesAllowed,
		OrderingAllowed: in.OrderingAllowed,
		DetailProduct:   detailProduct,
	})

	// Transport errors propagate; there is no retry in the turn path.
	output, err := s.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return nil, err
	}

	d := decision.Parse(output, products, in.ImagesAllowed)
	if d.Fallback {
		s.logger.Warn(constant.ModuleSalesAgent, "model output unparseable, using fallback", map[string]interface{}{
			"project_id": in.ProjectId.String(),
		})
	}

	reply := d.Message
	if turnIntent.Kind == intent.KindDetail && detailProduct != nil && !d.Fallback {
		reply = ensureFeatures(reply, detailProduct)
	}

	result := &TurnDecision{
		Reply:         reply,
		ImageProducts: d.ImageProducts,
		Fallback:      d.Fallback,
	}
	if in.OrderingAllowed {
		result.OrderRequest = d.CreateOrder
	}
	return result, nil
}

// ensureFeatures guarantees every feature of the matched product appears
// verbatim in the answer to a detail-seeking question, appending whichever
// ones the model left out.
func ensureFeatures(reply string, product *entity.Product) string {
	lower := strings.ToLower(reply)
	var missing []string
	for _, f := range product.Features {
		if !strings.Contains(lower, strings.ToLower(f)) {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		return reply
	}

	var b strings.Builder
	b.WriteString(reply)
	b.WriteString("\n\n")
	b.WriteString(product.Name)
	b.WriteString(" онцлогууд:")
	for _, f := range missing {
		b.WriteString("\n- ")
		b.WriteString(f)
	}
	return b.String()
}

func intentProducts(products []*entity.Product) []intent.Product {
	out := make([]intent.Product, len(products))
	for i, p := range products {
		out[i] = intent.Product{Id: p.Id.String(), Name: p.Name}
	}
	return out
}

func (s *salesAgentService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var conversation *entity.Conversation
	var err error
	if req.ConversationId != nil {
		conversation, err = uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: *req.ConversationId},
			specification.ByProjectID{ProjectID: req.ProjectId},
		)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Conversation not found")
		}
	} else if req.CustomerId != nil {
		conversation, err = uow.ConversationRepository().FindOne(ctx,
			specification.ByProjectID{ProjectID: req.ProjectId},
			specification.ByCustomerID{CustomerID: *req.CustomerId},
			specification.ByStatus{Status: string(entity.ConversationStatusActive)},
		)
		if err != nil {
			return nil, err
		}
	}

	if conversation == nil {
		conversation = &entity.Conversation{
			Id:         uuid.New(),
			ProjectId:  req.ProjectId,
			Platform:   "test",
			Status:     entity.ConversationStatusActive,
			AiEnabled:  true,
			Messages:   []entity.Message{},
			CreatedAt:  time.Now(),
			CustomerId: uuid.Nil,
		}
		if req.CustomerId != nil {
			conversation.CustomerId = *req.CustomerId
		}
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	lockKey := conversation.Id.String()
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	// Reload inside the lock so concurrent turns see each other's appends.
	fresh, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversation.Id})
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		conversation = fresh
	}

	var customerInfo *prompt.CustomerInfo
	var customer *entity.Customer
	if req.CustomerId != nil {
		customer, err = uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: *req.CustomerId})
		if err != nil {
			return nil, err
		}
		if customer != nil {
			customerInfo = customerToPromptInfo(customer)
		}
	}

	history := conversation.Messages
	imagesAllowed := !conversation.ImagesAlreadySent()
	if len(req.History) > 0 {
		// An explicit override drives the prompt instead of the stored log;
		// the image policy follows whichever history the model actually sees.
		history = make([]entity.Message, len(req.History))
		for i, m := range req.History {
			history[i] = entity.Message{Role: m.Role, Content: m.Content}
		}
		override := entity.Conversation{Messages: history}
		imagesAllowed = !override.ImagesAlreadySent()
	}

	turn, err := s.RunTurn(ctx, TurnInput{
		ProjectId:       req.ProjectId,
		History:         history,
		Message:         req.Message,
		Customer:        customerInfo,
		KnowledgeLimit:  constant.KnowledgeLimitDefault,
		ImagesAllowed:   imagesAllowed,
		OrderingAllowed: true,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatResponse{
		ConversationId: conversation.Id,
		Reply:          turn.Reply,
		Images:         productImagesDTO(turn.ImageProducts),
	}

	if turn.OrderRequest != nil {
		order, err := s.orderService.CreateFromAgent(ctx, req.ProjectId, req.CustomerId, &conversation.Id, turn.OrderRequest)
		if err != nil {
			// The reply still goes out; the operator sees the failure in logs.
			s.logger.Error(constant.ModuleSalesAgent, "agent order creation failed", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		} else {
			resp.OrderId = &order.Id
		}
	}

	if err := s.appendTurn(ctx, conversation, req.Message, turn); err != nil {
		return nil, err
	}

	if customer != nil {
		s.publishEngagement(ctx, conversation, customer.Id)
	}

	return resp, nil
}

func (s *salesAgentService) WidgetChat(ctx context.Context, req *dto.WidgetChatRequest) (*dto.WidgetChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessionId := req.SessionId
	var session *memory.WidgetSession
	if sessionId != "" {
		session, _ = s.sessions.Get(sessionId)
	}

	if session == nil {
		sessionId = uuid.NewString()

		name := optionalString(req.VisitorName)
		customer := &entity.Customer{
			Id:             uuid.New(),
			ProjectId:      req.ProjectId,
			Platform:       "widget",
			PlatformUserId: sessionId,
			Name:           name,
			LeadScore:      entity.LeadScoreCold,
			FirstContactAt: time.Now(),
		}
		if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
			return nil, err
		}

		conversation := &entity.Conversation{
			Id:         uuid.New(),
			ProjectId:  req.ProjectId,
			CustomerId: customer.Id,
			Platform:   "widget",
			Status:     entity.ConversationStatusActive,
			AiEnabled:  true,
			Messages:   []entity.Message{},
			CreatedAt:  time.Now(),
		}
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			return nil, err
		}

		session = &memory.WidgetSession{
			ID:             sessionId,
			ProjectId:      req.ProjectId,
			CustomerId:     customer.Id,
			ConversationId: conversation.Id,
			CreatedAt:      time.Now(),
		}
		s.sessions.Save(session)
	}

	lockKey := session.ConversationId.String()
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: session.ConversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		s.sessions.Delete(sessionId)
		return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Session conversation not found")
	}

	var customerInfo *prompt.CustomerInfo
	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: session.CustomerId})
	if err != nil {
		return nil, err
	}
	if customer != nil {
		customerInfo = customerToPromptInfo(customer)
	}

	turn, err := s.RunTurn(ctx, TurnInput{
		ProjectId:       req.ProjectId,
		History:         conversation.Messages,
		Message:         req.Message,
		Customer:        customerInfo,
		KnowledgeLimit:  constant.KnowledgeLimitDefault,
		ImagesAllowed:   !conversation.ImagesAlreadySent(),
		OrderingAllowed: true,
	})
	if err != nil {
		return nil, err
	}

	if turn.OrderRequest != nil {
		customerId := session.CustomerId
		if _, err := s.orderService.CreateFromAgent(ctx, req.ProjectId, &customerId, &conversation.Id, turn.OrderRequest); err != nil {
			s.logger.Error(constant.ModuleSalesAgent, "widget order creation failed", map[string]interface{}{
				"conversation_id": conversation.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	if err := s.appendTurn(ctx, conversation, req.Message, turn); err != nil {
		return nil, err
	}

	s.publishEngagement(ctx, conversation, session.CustomerId)

	return &dto.WidgetChatResponse{
		SessionId: sessionId,
		Reply:     turn.Reply,
		Images:    productImagesDTO(turn.ImageProducts),
	}, nil
}

// appendTurn stores the user message and the assistant reply as one
// conversation update. When the turn sent images the stored assistant copy
// carries the marker so later turns refuse to send more.
func (s *salesAgentService) appendTurn(ctx context.Context, conversation *entity.Conversation, userMessage string, turn *TurnDecision) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stored := turn.Reply
	if len(turn.ImageProducts) > 0 {
		stored += constant.ImageSentMarker
	}

	now := time.Now()
	conversation.Append(
		entity.Message{Role: constant.MessageRoleUser, Content: userMessage, CreatedAt: &now},
		entity.Message{Role: constant.MessageRoleAssistant, Content: stored, CreatedAt: &now},
	)

	return uow.ConversationRepository().Update(ctx, conversation)
}

func (s *salesAgentService) publishEngagement(ctx context.Context, conversation *entity.Conversation, customerId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	err := s.publisherService.PublishEngagement(ctx, &dto.PublishEngagementMessage{
		ProjectId:      conversation.ProjectId,
		CustomerId:     customerId,
		ConversationId: conversation.Id,
	})
	if err != nil {
		s.logger.Warn(constant.ModuleSalesAgent, "failed to publish engagement", map[string]interface{}{"error": err.Error()})
	}
}

func customerToPromptInfo(customer *entity.Customer) *prompt.CustomerInfo {
	info := &prompt.CustomerInfo{
		PreviousPurchases: customer.TotalOrders,
		LeadScore:         string(customer.LeadScore),
	}
	if customer.Name != nil {
		info.Name = *customer.Name
	}
	return info
}

func productImagesDTO(products []*entity.Product) []dto.ProductImagesDTO {
	if len(products) == 0 {
		return nil
	}
	out := make([]dto.ProductImagesDTO, len(products))
	for i, p := range products {
		out[i] = dto.ProductImagesDTO{
			ProductId: p.Id,
			Name:      p.Name,
			Images:    p.Images,
		}
	}
	return out
}
