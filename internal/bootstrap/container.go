package bootstrap

import (
	"context"
	"log"

	"ai-sales-be/internal/config"
	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/controller"
	"ai-sales-be/internal/pkg/logger"
	"ai-sales-be/internal/repository/memory"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/internal/service"
	"ai-sales-be/pkg/agent/convlock"
	"ai-sales-be/pkg/agent/intent"
	"ai-sales-be/pkg/channel/meta"
	"ai-sales-be/pkg/llm/factory"
	"ai-sales-be/pkg/research"

	pktNats "ai-sales-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SalesController        controller.ISalesController
	WebhookController      controller.IWebhookController
	ResearchController     controller.IResearchController
	OrderController        controller.IOrderController
	KnowledgeController    controller.IKnowledgeController
	ConversationController controller.IConversationController
	CoachController        controller.ICoachController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	webhookLogger := logger.NewIsolatedLogger(cfg.App.WebhookLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory widget sessions
	sessionRepo := memory.NewWidgetSessionRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	metaClient := meta.NewClient()
	synthesizer := research.NewSynthesizer(llmProvider)
	classifier := intent.NewKeywordClassifier()

	// 3. Services
	publisherService := service.NewPublisherService(constant.EngagementTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.EngagementTopicName,
		uowFactory,
		natsPub,
	)

	researchService := service.NewResearchService(uowFactory, synthesizer, rdb, natsPub, sysLogger)
	orderService := service.NewOrderService(uowFactory, natsPub, sysLogger)
	knowledgeService := service.NewKnowledgeService(uowFactory, llmProvider, sysLogger)
	coachService := service.NewCoachService(uowFactory, llmProvider)
	conversationService := service.NewConversationService(uowFactory, metaClient, sysLogger)

	// One locker shared by every channel so same-conversation turns
	// serialize no matter which adapter they arrive through.
	turnLocks := convlock.New()

	salesAgentService := service.NewSalesAgentService(
		uowFactory,
		llmProvider,
		researchService,
		orderService,
		publisherService,
		sessionRepo,
		classifier,
		turnLocks,
		sysLogger,
	)

	webhookService := service.NewWebhookService(
		uowFactory,
		salesAgentService,
		orderService,
		publisherService,
		metaClient,
		cfg.Meta.VerifyToken,
		turnLocks,
		webhookLogger,
	)

	// 4. Controllers
	return &Container{
		SalesController:        controller.NewSalesController(salesAgentService),
		WebhookController:      controller.NewWebhookController(webhookService),
		ResearchController:     controller.NewResearchController(researchService),
		OrderController:        controller.NewOrderController(orderService),
		KnowledgeController:    controller.NewKnowledgeController(knowledgeService),
		ConversationController: controller.NewConversationController(conversationService),
		CoachController:        controller.NewCoachController(coachService),

		ConsumerService: consumerService,
	}
}
