package service

import (
	"context"
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
	"ai-sales-be/pkg/agent/decision"
	"ai-sales-be/pkg/events"

	"github.com/google/uuid"
)

type IOrderService interface {
	GetAll(ctx context.Context, projectId uuid.UUID) ([]*dto.OrderResponse, error)
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	CreateFromAgent(ctx context.Context, projectId uuid.UUID, customerId, conversationId *uuid.UUID, req *decision.OrderRequest) (*entity.Order, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	uowFactory unitofwork.RepositoryFactory
	eventBus   IEventBus
	logger     logger.ILogger
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	eventBus IEventBus,
	log logger.ILogger,
) IOrderService {
	return &orderService{
		uowFactory: uowFactory,
		eventBus:   eventBus,
		logger:     log,
	}
}

func (s *orderService) GetAll(ctx context.Context, projectId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.OrderResponse, len(orders))
	for i, order := range orders {
		result[i] = toOrderResponse(order)
	}
	return result, nil
}

func (s *orderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	items := make([]entity.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = entity.OrderItem{
			ProductId: it.ProductId,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}

	order := &entity.Order{
		Id:              uuid.New(),
		ProjectId:       req.ProjectId,
		CustomerId:      req.CustomerId,
		ConversationId:  req.ConversationId,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		CustomerName:    optionalString(req.CustomerName),
		CustomerPhone:   optionalString(req.CustomerPhone),
		CustomerAddress: optionalString(req.CustomerAddress),
		Notes:           optionalString(req.Notes),
		Status:          entity.OrderStatusPending,
		StatusChangedAt: time.Now(),
		CreatedAt:       time.Now(),
	}

	if err := s.persistOrder(ctx, order); err != nil {
		return nil, err
	}

	return &dto.CreateOrderResponse{
		Id:     order.Id,
		Status: string(order.Status),
	}, nil
}

// CreateFromAgent turns the model's order proposal into a pending order.
// The item's unit price comes from the live catalog at creation time.
func (s *orderService) CreateFromAgent(ctx context.Context, projectId uuid.UUID, customerId, conversationId *uuid.UUID, req *decision.OrderRequest) (*entity.Order, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	productId, err := uuid.Parse(req.ProductId)
	if err != nil {
		return nil, fmt.Errorf("agent order: invalid product id %q", req.ProductId)
	}

	product, err := uow.ProductRepository().FindOne(ctx,
		specification.ByID{ID: productId},
		specification.ByProjectID{ProjectID: projectId},
	)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("agent order: product %s not found in project", productId)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	unitPrice := 0.0
	if product.Price != nil {
		unitPrice = *product.Price
	}
	total := req.TotalAmount
	if total == 0 {
		total = unitPrice * float64(quantity)
	}

	order := &entity.Order{
		Id:             uuid.New(),
		ProjectId:      projectId,
		CustomerId:     customerId,
		ConversationId: conversationId,
		Items: []entity.OrderItem{{
			ProductId: product.Id,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}},
		TotalAmount:     total,
		CustomerName:    optionalString(req.CustomerName),
		CustomerPhone:   optionalString(req.Phone),
		CustomerAddress: optionalString(req.Address),
		Notes:           optionalString(req.Note),
		Status:          entity.OrderStatusPending,
		StatusChangedAt: time.Now(),
		CreatedAt:       time.Now(),
	}

	if err := s.persistOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// persistOrder writes the order and applies the customer side effects in
// one transaction: total counters go up and the lead becomes hot. A customer
// who ordered is hot no matter what they were before.
func (s *orderService) persistOrder(ctx context.Context, order *entity.Order) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return err
	}

	var oldScore, newScore entity.LeadScore
	if order.CustomerId != nil {
		customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: *order.CustomerId})
		if err != nil {
			return err
		}
		if customer != nil {
			oldScore = customer.LeadScore
			customer.TotalOrders++
			customer.TotalSpent += order.TotalAmount
			if !customer.LeadScore.AtLeast(entity.LeadScoreHot) {
				customer.LeadScore = entity.LeadScoreHot
			}
			newScore = customer.LeadScore
			now := time.Now()
			customer.LastInteractionAt = &now
			if err := uow.CustomerRepository().Update(ctx, customer); err != nil {
				return err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info(constant.ModuleOrder, "order created", map[string]interface{}{
		"order_id":   order.Id.String(),
		"project_id": order.ProjectId.String(),
		"total":      order.TotalAmount,
	})

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events.NewOrderCreatedEvent(order.Id, order.ProjectId, order.CustomerId, order.TotalAmount)); err != nil {
			s.logger.Warn(constant.ModuleOrder, "failed to publish order event", map[string]interface{}{"error": err.Error()})
		}
		if order.CustomerId != nil && oldScore != newScore {
			if err := s.eventBus.Publish(ctx, events.NewLeadScoreChangedEvent(*order.CustomerId, order.ProjectId, string(oldScore), string(newScore))); err != nil {
				s.logger.Warn(constant.ModuleOrder, "failed to publish lead score event", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, serverutils.NewAppError(serverutils.CodeNotFound, http.StatusNotFound, "Order not found")
	}

	next := entity.OrderStatus(req.Status)
	if !order.Status.CanTransitionTo(next) {
		return nil, serverutils.NewAppError(serverutils.CodeInvalidState, http.StatusConflict,
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, next))
	}

	order.Status = next
	order.StatusChangedAt = time.Now()
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return nil, err
	}

	return toOrderResponse(order), nil
}

func toOrderResponse(order *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemDTO, len(order.Items))
	for i, it := range order.Items {
		items[i] = dto.OrderItemDTO{
			ProductId: it.ProductId,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return &dto.OrderResponse{
		Id:              order.Id,
		ProjectId:       order.ProjectId,
		CustomerId:      order.CustomerId,
		ConversationId:  order.ConversationId,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Notes:           order.Notes,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
