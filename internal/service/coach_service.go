package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/llm"
)

type ICoachService interface {
	Chat(ctx context.Context, req *dto.CoachChatRequest) (*dto.CoachChatResponse, error)
}

// coachService is the operator-facing advisor: it talks about the business
// to its owner, never to a customer.
type coachService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
}

func NewCoachService(uowFactory unitofwork.RepositoryFactory, llmProvider llm.LLMProvider) ICoachService {
	return &coachService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
	}
}

func (s *coachService) Chat(ctx context.Context, req *dto.CoachChatRequest) (*dto.CoachChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: req.ProjectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Project not found")
	}

	profile, err := uow.ResearchRepository().FindByProjectId(ctx, req.ProjectId)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(`Та бизнес эзэдэд зориулсан AI зөвлөх юм.

## Таны үүрэг:
- Бизнесийн гүйцэтгэлийн талаар зөвлөгөө өгөх
- AI борлуулалтын туслахыг сайжруулах санал өгөх
- Борлуулалтын стратегийн зөвлөгөө өгөх
- Асуултанд хариулах

## Бизнесийн мэдээлэл:
`)
	fmt.Fprintf(&b, "Нэр: %s\nСалбар: %s\nТайлбар: %s\n", project.Name, project.Industry, project.Description)
	if profile != nil {
		if doc, err := json.MarshalIndent(profile.Document, "", "  "); err == nil {
			b.WriteString("\n## Судалгааны дүн:\n")
			b.Write(doc)
			b.WriteByte('\n')
		}
	}
	b.WriteString(`
## Дүрмүүд:
1. Монгол хэлээр ярь
2. Практик, хэрэгжүүлэхэд хялбар зөвлөгөө өг
3. Тоо баримтад суурилсан шинжилгээ хий
4. Урам зориг өг, шүүмжлэхгүй`)

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: "system", Content: b.String()})
	for _, m := range req.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})

	reply, err := s.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, err
	}

	return &dto.CoachChatResponse{Reply: reply}, nil
}
