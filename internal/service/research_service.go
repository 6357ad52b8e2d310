package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/logger"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/agent/knowledge"
	"ai-sales-be/pkg/events"
	"ai-sales-be/pkg/research"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const researchCacheTTL = 5 * time.Minute

type IResearchService interface {
	Run(ctx context.Context, req *dto.RunResearchRequest) (*dto.RunResearchResponse, error)
	Status(ctx context.Context, projectId uuid.UUID) (*dto.ResearchStatusResponse, error)
	// GetProfile is the read path the sales turn uses; it goes through the
	// redis cache. Returns (nil, nil) when the project is untrained.
	GetProfile(ctx context.Context, projectId uuid.UUID) (*entity.ResearchProfile, error)
}

type researchService struct {
	uowFactory  unitofwork.RepositoryFactory
	synthesizer *research.Synthesizer
	redis       *redis.Client
	eventBus    IEventBus
	logger      logger.ILogger
}

func NewResearchService(
	uowFactory unitofwork.RepositoryFactory,
	synthesizer *research.Synthesizer,
	redisClient *redis.Client,
	eventBus IEventBus,
	log logger.ILogger,
) IResearchService {
	return &researchService{
		uowFactory:  uowFactory,
		synthesizer: synthesizer,
		redis:       redisClient,
		eventBus:    eventBus,
		logger:      log,
	}
}

func researchCacheKey(projectId uuid.UUID) string {
	return "research:" + projectId.String()
}

func (s *researchService) Run(ctx context.Context, req *dto.RunResearchRequest) (*dto.RunResearchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: req.ProjectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Project not found")
	}

	// The synthesizer sees the whole catalog, inactive products included.
	products, err := uow.ProductRepository().FindAll(ctx, specification.ByProjectID{ProjectID: req.ProjectId})
	if err != nil {
		return nil, err
	}

	brand, err := uow.BrandProfileRepository().FindByProjectId(ctx, req.ProjectId)
	if err != nil {
		return nil, err
	}

	snippets, err := uow.KnowledgeRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.ProjectOrGlobalScope{ProjectID: req.ProjectId},
		specification.ByCategoryIn{Categories: knowledge.CategoriesFor(knowledge.PurposeResearch)},
		specification.OrderBy{Field: "priority", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	knowledgeBlock := knowledge.Aggregate(snippets, constant.KnowledgeLimitDefault)

	doc, err := s.synthesizer.Synthesize(ctx, research.Input{
		Project:        project,
		Products:       products,
		Brand:          brand,
		KnowledgeBlock: knowledgeBlock,
	})
	if err != nil {
		// A failed run never clobbers a previously valid profile.
		s.logger.Error(constant.ModuleResearch, "synthesis failed", map[string]interface{}{
			"project_id": req.ProjectId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	profile := &entity.ResearchProfile{
		ProjectId:      req.ProjectId,
		Document:       *doc,
		LastResearchAt: time.Now(),
	}
	if err := uow.ResearchRepository().Upsert(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.redis.Del(ctx, researchCacheKey(req.ProjectId)).Err(); err != nil {
		s.logger.Warn(constant.ModuleResearch, "cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events.NewResearchUpdatedEvent(req.ProjectId)); err != nil {
			s.logger.Warn(constant.ModuleResearch, "failed to publish research event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info(constant.ModuleResearch, "research profile regenerated", map[string]interface{}{
		"project_id": req.ProjectId.String(),
	})

	return &dto.RunResearchResponse{
		ProjectId:            req.ProjectId,
		Document:             profile.Document,
		LastResearchAt:       profile.LastResearchAt,
		ManualEditsDiscarded: true,
	}, nil
}

func (s *researchService) Status(ctx context.Context, projectId uuid.UUID) (*dto.ResearchStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ResearchRepository().FindByProjectId(ctx, projectId)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResearchStatusResponse{ProjectId: projectId}
	if profile != nil {
		resp.Ready = true
		resp.LastResearchAt = &profile.LastResearchAt
	}
	return resp, nil
}

func (s *researchService) GetProfile(ctx context.Context, projectId uuid.UUID) (*entity.ResearchProfile, error) {
	key := researchCacheKey(projectId)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key).Result()
		if err == nil {
			var profile entity.ResearchProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
			// Corrupt cache entries fall through to the database.
		} else if err != redis.Nil {
			s.logger.Warn(constant.ModuleResearch, "cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ResearchRepository().FindByProjectId(ctx, projectId)
	if err != nil {
		return nil, fmt.Errorf("load research profile: %w", err)
	}
	if profile == nil {
		return nil, nil
	}

	if s.redis != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.redis.Set(ctx, key, data, researchCacheTTL).Err(); err != nil {
				s.logger.Warn(constant.ModuleResearch, "cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return profile, nil
}
