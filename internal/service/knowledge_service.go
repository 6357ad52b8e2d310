package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/logger"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/llm"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	GetAll(ctx context.Context, projectId uuid.UUID) ([]*dto.KnowledgeResponse, error)
	Create(ctx context.Context, req *dto.CreateKnowledgeRequest) (*dto.KnowledgeResponse, error)
	Update(ctx context.Context, req *dto.UpdateKnowledgeRequest) (*dto.KnowledgeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TrainerChat(ctx context.Context, req *dto.TrainerChatRequest) (*dto.TrainerChatResponse, error)
}

type knowledgeService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      log,
	}
}

func (s *knowledgeService) GetAll(ctx context.Context, projectId uuid.UUID) ([]*dto.KnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	snippets, err := uow.KnowledgeRepository().FindAll(ctx,
		specification.ProjectOrGlobalScope{ProjectID: projectId},
		specification.OrderBy{Field: "priority", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.KnowledgeResponse, len(snippets))
	for i, k := range snippets {
		result[i] = toKnowledgeResponse(k)
	}
	return result, nil
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateKnowledgeRequest) (*dto.KnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	snippet := &entity.KnowledgeSnippet{
		Id:        uuid.New(),
		ProjectId: req.ProjectId,
		Category:  req.Category,
		Title:     req.Title,
		Content:   req.Content,
		Priority:  req.Priority,
		IsActive:  active,
		CreatedAt: time.Now(),
	}
	if err := uow.KnowledgeRepository().Create(ctx, snippet); err != nil {
		return nil, err
	}
	return toKnowledgeResponse(snippet), nil
}

func (s *knowledgeService) Update(ctx context.Context, req *dto.UpdateKnowledgeRequest) (*dto.KnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	snippet, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if snippet == nil {
		return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Knowledge snippet not found")
	}

	snippet.Category = req.Category
	snippet.Title = req.Title
	snippet.Content = req.Content
	snippet.Priority = req.Priority
	if req.IsActive != nil {
		snippet.IsActive = *req.IsActive
	}

	if err := uow.KnowledgeRepository().Update(ctx, snippet); err != nil {
		return nil, err
	}
	return toKnowledgeResponse(snippet), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	snippet, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if snippet == nil {
		return serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Knowledge snippet not found")
	}
	return uow.KnowledgeRepository().Delete(ctx, id)
}

// trainerSaveTrigger is the structured reply the trainer model emits when
// the operator's input should be persisted as a snippet.
type trainerSaveTrigger struct {
	Save     bool   `json:"save"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority int    `json:"priority"`
	Message  string `json:"message"`
}

const trainerSystemPrompt = `Та AI борлуулалтын туслахын мэдлэгийн сан бүрдүүлэгч юм.
Админтай ярилцаж, борлуулалтын заавар, дүрэм, мэдлэгийг цуглуулна.

Админ хадгалах ёстой мэдлэг өгсөн үед ЗААВАЛ дараах JSON форматаар хариул:
{"save": true, "category": "sales|research|general|objections|greetings|products", "title": "Товч гарчиг", "content": "Хадгалах мэдлэг", "priority": 0, "message": "Админд өгөх хариулт"}

Энгийн яриа бол:
{"save": false, "message": "Таны хариулт"}`

func (s *knowledgeService) TrainerChat(ctx context.Context, req *dto.TrainerChatRequest) (*dto.TrainerChatResponse, error) {
	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: constant.MessageRoleSystem, Content: trainerSystemPrompt})
	for _, m := range req.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: constant.MessageRoleUser, Content: req.Message})

	output, err := s.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.5),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return nil, err
	}

	var trigger trainerSaveTrigger
	if err := json.Unmarshal([]byte(output), &trigger); err != nil {
		// A plain-text answer is still useful; just no save.
		return &dto.TrainerChatResponse{Reply: strings.TrimSpace(output)}, nil
	}

	resp := &dto.TrainerChatResponse{Reply: trigger.Message}
	if !trigger.Save || strings.TrimSpace(trigger.Content) == "" {
		return resp, nil
	}

	category := trigger.Category
	if category == "" {
		category = constant.KnowledgeCategoryGeneral
	}

	created, err := s.Create(ctx, &dto.CreateKnowledgeRequest{
		ProjectId: req.ProjectId,
		Category:  category,
		Title:     trigger.Title,
		Content:   trigger.Content,
		Priority:  trigger.Priority,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(constant.ModuleKnowledge, "trainer chat saved snippet", map[string]interface{}{
		"snippet_id": created.Id.String(),
		"project_id": req.ProjectId.String(),
	})

	resp.Saved = true
	resp.SavedSnippetId = &created.Id
	return resp, nil
}

func toKnowledgeResponse(k *entity.KnowledgeSnippet) *dto.KnowledgeResponse {
	return &dto.KnowledgeResponse{
		Id:        k.Id,
		ProjectId: k.ProjectId,
		Category:  k.Category,
		Title:     k.Title,
		Content:   k.Content,
		Priority:  k.Priority,
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}
