package service

import (
	"context"
	"testing"

	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/pkg/agent/decision"
	"ai-sales-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderFixture() (*fakeUow, *fakeEventBus, IOrderService) {
	uow := newFakeUow()
	bus := &fakeEventBus{}
	svc := NewOrderService(&fakeUowFactory{uow: uow}, bus, nopLogger{})
	return uow, bus, svc
}

func TestCreateFromAgent(t *testing.T) {
	projectId := uuid.New()
	price := 30000.0
	product := &entity.Product{Id: uuid.New(), ProjectId: projectId, Name: "Цүнх", Price: &price}

	t.Run("price comes from catalog, total derived", func(t *testing.T) {
		uow, _, svc := orderFixture()
		uow.products.findOne = func([]specification.Specification) (*entity.Product, error) { return product, nil }

		order, err := svc.CreateFromAgent(context.Background(), projectId, nil, nil, &decision.OrderRequest{
			ProductId: product.Id.String(),
			Quantity:  2,
		})

		require.NoError(t, err)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 30000.0, order.Items[0].UnitPrice)
		assert.Equal(t, 60000.0, order.TotalAmount)
		assert.Equal(t, entity.OrderStatusPending, order.Status)
	})

	t.Run("model total wins when present", func(t *testing.T) {
		uow, _, svc := orderFixture()
		uow.products.findOne = func([]specification.Specification) (*entity.Product, error) { return product, nil }

		order, err := svc.CreateFromAgent(context.Background(), projectId, nil, nil, &decision.OrderRequest{
			ProductId:   product.Id.String(),
			Quantity:    2,
			TotalAmount: 55000,
		})

		require.NoError(t, err)
		assert.Equal(t, 55000.0, order.TotalAmount)
	})

	t.Run("quantity clamps to one", func(t *testing.T) {
		uow, _, svc := orderFixture()
		uow.products.findOne = func([]specification.Specification) (*entity.Product, error) { return product, nil }

		order, err := svc.CreateFromAgent(context.Background(), projectId, nil, nil, &decision.OrderRequest{
			ProductId: product.Id.String(),
			Quantity:  0,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, order.Items[0].Quantity)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		_, _, svc := orderFixture()

		_, err := svc.CreateFromAgent(context.Background(), projectId, nil, nil, &decision.OrderRequest{
			ProductId: uuid.NewString(),
			Quantity:  1,
		})

		assert.ErrorContains(t, err, "not found in project")
	})

	t.Run("malformed product id rejected", func(t *testing.T) {
		_, _, svc := orderFixture()

		_, err := svc.CreateFromAgent(context.Background(), projectId, nil, nil, &decision.OrderRequest{
			ProductId: "not-a-uuid",
		})

		assert.ErrorContains(t, err, "invalid product id")
	})
}

func TestPersistOrderCustomerSideEffects(t *testing.T) {
	projectId := uuid.New()
	price := 10000.0
	product := &entity.Product{Id: uuid.New(), ProjectId: projectId, Name: "Цүнх", Price: &price}
	customerId := uuid.New()

	uow, bus, svc := orderFixture()
	uow.products.findOne = func([]specification.Specification) (*entity.Product, error) { return product, nil }
	uow.customers.customer = &entity.Customer{
		Id:          customerId,
		LeadScore:   entity.LeadScoreWarm,
		TotalOrders: 1,
		TotalSpent:  20000,
	}

	_, err := svc.CreateFromAgent(context.Background(), projectId, &customerId, nil, &decision.OrderRequest{
		ProductId: product.Id.String(),
		Quantity:  3,
	})

	require.NoError(t, err)

	// The write happens inside one transaction.
	assert.Equal(t, 1, uow.begun)
	assert.Equal(t, 1, uow.committed)
	require.Len(t, uow.orders.created, 1)

	updated := uow.customers.updated
	require.NotNil(t, updated)
	assert.Equal(t, entity.LeadScoreHot, updated.LeadScore)
	assert.Equal(t, 2, updated.TotalOrders)
	assert.Equal(t, 50000.0, updated.TotalSpent)
	assert.NotNil(t, updated.LastInteractionAt)

	require.Len(t, bus.published, 2)
	assert.Equal(t, events.TypeOrderCreated, bus.published[0].EventType())
	assert.Equal(t, events.TypeLeadScoreChanged, bus.published[1].EventType())
}

func TestPersistOrderHotCustomerNoScoreEvent(t *testing.T) {
	projectId := uuid.New()
	price := 10000.0
	product := &entity.Product{Id: uuid.New(), ProjectId: projectId, Name: "Цүнх", Price: &price}
	customerId := uuid.New()

	uow, bus, svc := orderFixture()
	uow.products.findOne = func([]specification.Specification) (*entity.Product, error) { return product, nil }
	uow.customers.customer = &entity.Customer{Id: customerId, LeadScore: entity.LeadScoreHot}

	_, err := svc.CreateFromAgent(context.Background(), projectId, &customerId, nil, &decision.OrderRequest{
		ProductId: product.Id.String(),
		Quantity:  1,
	})

	require.NoError(t, err)
	require.Len(t, bus.published, 1)
	assert.Equal(t, events.TypeOrderCreated, bus.published[0].EventType())
}

func TestUpdateStatus(t *testing.T) {
	t.Run("legal transition", func(t *testing.T) {
		uow, _, svc := orderFixture()
		uow.orders.order = &entity.Order{Id: uuid.New(), Status: entity.OrderStatusPending}

		resp, err := svc.UpdateStatus(context.Background(), &dto.UpdateOrderStatusRequest{
			Id:     uow.orders.order.Id,
			Status: "confirmed",
		})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.NotNil(t, uow.orders.updated)
	})

	t.Run("illegal transition conflicts", func(t *testing.T) {
		uow, _, svc := orderFixture()
		uow.orders.order = &entity.Order{Id: uuid.New(), Status: entity.OrderStatusDelivered}

		_, err := svc.UpdateStatus(context.Background(), &dto.UpdateOrderStatusRequest{
			Id:     uow.orders.order.Id,
			Status: "shipped",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.CodeInvalidState, appErr.Code)
		assert.Nil(t, uow.orders.updated)
	})

	t.Run("missing order", func(t *testing.T) {
		_, _, svc := orderFixture()

		_, err := svc.UpdateStatus(context.Background(), &dto.UpdateOrderStatusRequest{
			Id:     uuid.New(),
			Status: "confirmed",
		})

		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
	})
}
