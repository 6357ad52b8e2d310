package service

import (
	"context"

	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/repository/contract"
	"ai-sales-be/internal/repository/specification"
	"ai-sales-be/internal/repository/unitofwork"
	"ai-sales-be/pkg/agent/decision"
	"ai-sales-be/pkg/events"
	"ai-sales-be/pkg/llm"

	"github.com/google/uuid"
)

// Shared in-memory doubles for the service tests. Specifications carry SQL
// semantics the fakes cannot apply, so each fake returns whatever its
// function stub says and ignores the spec list.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubLLM struct {
	output   string
	err      error
	messages []llm.Message
	opts     []llm.Option
}

func (s *stubLLM) Chat(_ context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.messages = history
	s.opts = options
	return s.output, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeEventBus struct {
	published []events.Event
	err       error
}

func (f *fakeEventBus) Publish(_ context.Context, event events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type fakePublisher struct {
	messages []*dto.PublishEngagementMessage
}

func (f *fakePublisher) PublishEngagement(_ context.Context, msg *dto.PublishEngagementMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

type fakeResearchService struct {
	profile *entity.ResearchProfile
	err     error
}

func (f *fakeResearchService) Run(context.Context, *dto.RunResearchRequest) (*dto.RunResearchResponse, error) {
	panic("not used")
}

func (f *fakeResearchService) Status(context.Context, uuid.UUID) (*dto.ResearchStatusResponse, error) {
	panic("not used")
}

func (f *fakeResearchService) GetProfile(context.Context, uuid.UUID) (*entity.ResearchProfile, error) {
	return f.profile, f.err
}

type fakeOrderService struct {
	created []*decision.OrderRequest
	order   *entity.Order
	err     error
}

func (f *fakeOrderService) GetAll(context.Context, uuid.UUID) ([]*dto.OrderResponse, error) {
	panic("not used")
}

func (f *fakeOrderService) Create(context.Context, *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	panic("not used")
}

func (f *fakeOrderService) CreateFromAgent(_ context.Context, _ uuid.UUID, _, _ *uuid.UUID, req *decision.OrderRequest) (*entity.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	if f.order != nil {
		return f.order, nil
	}
	return &entity.Order{Id: uuid.New(), Status: entity.OrderStatusPending}, nil
}

func (f *fakeOrderService) UpdateStatus(context.Context, *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	panic("not used")
}

// fakeUow hands out stub repositories and records transaction calls.
type fakeUow struct {
	begun      int
	committed  int
	rolledBack int

	projects      *fakeProjectRepo
	socials       *fakeSocialAccountRepo
	products      *fakeProductRepo
	brands        *fakeBrandProfileRepo
	knowledge     *fakeKnowledgeRepo
	research      *fakeResearchRepo
	customers     *fakeCustomerRepo
	conversations *fakeConversationRepo
	orders        *fakeOrderRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		projects:      &fakeProjectRepo{},
		socials:       &fakeSocialAccountRepo{},
		products:      &fakeProductRepo{},
		brands:        &fakeBrandProfileRepo{},
		knowledge:     &fakeKnowledgeRepo{},
		research:      &fakeResearchRepo{},
		customers:     &fakeCustomerRepo{},
		conversations: &fakeConversationRepo{},
		orders:        &fakeOrderRepo{},
	}
}

func (u *fakeUow) Begin(context.Context) error { u.begun++; return nil }
func (u *fakeUow) Commit() error               { u.committed++; return nil }
func (u *fakeUow) Rollback() error             { u.rolledBack++; return nil }

func (u *fakeUow) ProjectRepository() contract.ProjectRepository             { return u.projects }
func (u *fakeUow) SocialAccountRepository() contract.SocialAccountRepository { return u.socials }
func (u *fakeUow) ProductRepository() contract.ProductRepository             { return u.products }
func (u *fakeUow) BrandProfileRepository() contract.BrandProfileRepository   { return u.brands }
func (u *fakeUow) KnowledgeRepository() contract.KnowledgeRepository         { return u.knowledge }
func (u *fakeUow) ResearchRepository() contract.ResearchRepository           { return u.research }
func (u *fakeUow) CustomerRepository() contract.CustomerRepository           { return u.customers }
func (u *fakeUow) ConversationRepository() contract.ConversationRepository   { return u.conversations }
func (u *fakeUow) OrderRepository() contract.OrderRepository                 { return u.orders }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeProjectRepo struct {
	findOne func() (*entity.Project, error)
}

func (r *fakeProjectRepo) Create(context.Context, *entity.Project) error { return nil }
func (r *fakeProjectRepo) Update(context.Context, *entity.Project) error { return nil }
func (r *fakeProjectRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (r *fakeProjectRepo) FindOne(context.Context, ...specification.Specification) (*entity.Project, error) {
	if r.findOne == nil {
		return nil, nil
	}
	return r.findOne()
}
func (r *fakeProjectRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Project, error) {
	return nil, nil
}
func (r *fakeProjectRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeSocialAccountRepo struct {
	findOne func() (*entity.SocialAccount, error)
}

func (r *fakeSocialAccountRepo) Create(context.Context, *entity.SocialAccount) error { return nil }
func (r *fakeSocialAccountRepo) Update(context.Context, *entity.SocialAccount) error { return nil }
func (r *fakeSocialAccountRepo) FindOne(context.Context, ...specification.Specification) (*entity.SocialAccount, error) {
	if r.findOne == nil {
		return nil, nil
	}
	return r.findOne()
}
func (r *fakeSocialAccountRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.SocialAccount, error) {
	return nil, nil
}

type fakeProductRepo struct {
	items   []*entity.Product
	findOne func(specs []specification.Specification) (*entity.Product, error)
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.items = append(r.items, p)
	return nil
}
func (r *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (r *fakeProductRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Product, error) {
	if r.findOne != nil {
		return r.findOne(specs)
	}
	return nil, nil
}
func (r *fakeProductRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Product, error) {
	return r.items, nil
}
func (r *fakeProductRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeBrandProfileRepo struct {
	profile *entity.BrandProfile
}

func (r *fakeBrandProfileRepo) Upsert(_ context.Context, p *entity.BrandProfile) error {
	r.profile = p
	return nil
}
func (r *fakeBrandProfileRepo) FindByProjectId(context.Context, uuid.UUID) (*entity.BrandProfile, error) {
	return r.profile, nil
}
func (r *fakeBrandProfileRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeKnowledgeRepo struct {
	items   []*entity.KnowledgeSnippet
	created []*entity.KnowledgeSnippet
}

func (r *fakeKnowledgeRepo) Create(_ context.Context, s *entity.KnowledgeSnippet) error {
	r.created = append(r.created, s)
	return nil
}
func (r *fakeKnowledgeRepo) Update(context.Context, *entity.KnowledgeSnippet) error { return nil }
func (r *fakeKnowledgeRepo) Delete(context.Context, uuid.UUID) error                { return nil }
func (r *fakeKnowledgeRepo) FindOne(context.Context, ...specification.Specification) (*entity.KnowledgeSnippet, error) {
	if len(r.items) == 0 {
		return nil, nil
	}
	return r.items[0], nil
}
func (r *fakeKnowledgeRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.KnowledgeSnippet, error) {
	return r.items, nil
}
func (r *fakeKnowledgeRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeResearchRepo struct {
	profile  *entity.ResearchProfile
	upserted *entity.ResearchProfile
}

func (r *fakeResearchRepo) Upsert(_ context.Context, p *entity.ResearchProfile) error {
	r.upserted = p
	r.profile = p
	return nil
}
func (r *fakeResearchRepo) FindByProjectId(context.Context, uuid.UUID) (*entity.ResearchProfile, error) {
	return r.profile, nil
}

type fakeCustomerRepo struct {
	customer *entity.Customer
	updated  *entity.Customer
	created  []*entity.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.created = append(r.created, c)
	return nil
}
func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.updated = c
	return nil
}
func (r *fakeCustomerRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (r *fakeCustomerRepo) FindOne(context.Context, ...specification.Specification) (*entity.Customer, error) {
	return r.customer, nil
}
func (r *fakeCustomerRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Customer, error) {
	if r.customer == nil {
		return nil, nil
	}
	return []*entity.Customer{r.customer}, nil
}
func (r *fakeCustomerRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeConversationRepo struct {
	conversation *entity.Conversation
	created      []*entity.Conversation
	updated      *entity.Conversation
}

func (r *fakeConversationRepo) Create(_ context.Context, c *entity.Conversation) error {
	r.created = append(r.created, c)
	r.conversation = c
	return nil
}
func (r *fakeConversationRepo) Update(_ context.Context, c *entity.Conversation) error {
	r.updated = c
	return nil
}
func (r *fakeConversationRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (r *fakeConversationRepo) FindOne(context.Context, ...specification.Specification) (*entity.Conversation, error) {
	return r.conversation, nil
}
func (r *fakeConversationRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Conversation, error) {
	if r.conversation == nil {
		return nil, nil
	}
	return []*entity.Conversation{r.conversation}, nil
}
func (r *fakeConversationRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeOrderRepo struct {
	order   *entity.Order
	created []*entity.Order
	updated *entity.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.created = append(r.created, o)
	return nil
}
func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.updated = o
	return nil
}
func (r *fakeOrderRepo) Delete(context.Context, uuid.UUID) error { return nil }
func (r *fakeOrderRepo) FindOne(context.Context, ...specification.Specification) (*entity.Order, error) {
	return r.order, nil
}
func (r *fakeOrderRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Order, error) {
	if r.order == nil {
		return nil, nil
	}
	return []*entity.Order{r.order}, nil
}
func (r *fakeOrderRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
