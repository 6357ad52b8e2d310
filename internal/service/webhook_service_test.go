package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/entity"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/pkg/agent/convlock"
	"ai-sales-be/pkg/agent/decision"
	"ai-sales-be/pkg/channel/meta"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	decision *TurnDecision
	err      error
	inputs   []TurnInput
}

func (f *fakeAgent) Chat(context.Context, *dto.ChatRequest) (*dto.ChatResponse, error) {
	panic("not used")
}

func (f *fakeAgent) WidgetChat(context.Context, *dto.WidgetChatRequest) (*dto.WidgetChatResponse, error) {
	panic("not used")
}

func (f *fakeAgent) RunTurn(_ context.Context, in TurnInput) (*TurnDecision, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.decision, nil
}

type metaCall struct {
	path string
	body map[string]any
}

// graphStub records every Graph API call the adapter makes.
func graphStub(t *testing.T) (*meta.Client, *[]metaCall) {
	t.Helper()
	calls := &[]metaCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := metaCall{path: r.URL.Path}
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&call.body)
		}
		*calls = append(*calls, call)
		_, _ = w.Write([]byte(`{"name":"Бат","id":"u_1"}`))
	}))
	t.Cleanup(srv.Close)

	client := meta.NewClient()
	client.BaseURL = srv.URL
	return client, calls
}

type webhookFixture struct {
	uow       *fakeUow
	agent     *fakeAgent
	orders    *fakeOrderService
	publisher *fakePublisher
	calls     *[]metaCall
	svc       IWebhookService
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	uow := newFakeUow()
	uow.socials.findOne = func() (*entity.SocialAccount, error) {
		return &entity.SocialAccount{
			Id:          uuid.New(),
			ProjectId:   uuid.New(),
			Platform:    "facebook",
			PageId:      "page_1",
			AccessToken: "tok",
			IsActive:    true,
		}, nil
	}
	agent := &fakeAgent{decision: &TurnDecision{Reply: "Сайн байна уу"}}
	orders := &fakeOrderService{}
	publisher := &fakePublisher{}
	client, calls := graphStub(t)
	svc := NewWebhookService(&fakeUowFactory{uow: uow}, agent, orders, publisher, client, "secret", convlock.New(), nopLogger{})
	return &webhookFixture{uow: uow, agent: agent, orders: orders, publisher: publisher, calls: calls, svc: svc}
}

func messagingPayload(text string) *dto.MetaWebhookPayload {
	return &dto.MetaWebhookPayload{
		Object: "page",
		Entry: []dto.MetaWebhookEntry{{
			Id: "page_1",
			Messaging: []dto.MetaMessagingEvent{{
				Sender:    dto.MetaParty{Id: "user_1"},
				Recipient: dto.MetaParty{Id: "page_1"},
				Message:   &dto.MetaMessage{Mid: "m_1", Text: text},
			}},
		}},
	}
}

func commentPayload(fromId, message string) *dto.MetaWebhookPayload {
	return &dto.MetaWebhookPayload{
		Object: "page",
		Entry: []dto.MetaWebhookEntry{{
			Id: "page_1",
			Changes: []dto.MetaChangeEvent{{
				Field: "feed",
				Value: dto.MetaChangeValue{
					Item:      "comment",
					Verb:      "add",
					CommentId: "cmt_1",
					Message:   message,
					From:      dto.MetaParty{Id: fromId, Name: "Сараа"},
				},
			}},
		}},
	}
}

func TestVerify(t *testing.T) {
	svc := NewWebhookService(&fakeUowFactory{uow: newFakeUow()}, &fakeAgent{}, &fakeOrderService{}, &fakePublisher{}, meta.NewClient(), "secret", convlock.New(), nopLogger{})

	challenge, err := svc.Verify("subscribe", "secret", "1158201444")
	require.NoError(t, err)
	assert.Equal(t, "1158201444", challenge)

	for _, tc := range []struct {
		name  string
		mode  string
		token string
	}{
		{"wrong token", "subscribe", "guess"},
		{"wrong mode", "unsubscribe", "secret"},
		{"empty", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Verify(tc.mode, tc.token, "1158201444")
			var appErr *serverutils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, serverutils.CodeForbidden, appErr.Code)
		})
	}
}

func TestHandleEventMessagingReplies(t *testing.T) {
	f := newWebhookFixture(t)

	f.svc.HandleEvent(context.Background(), messagingPayload("Цүнхний үнэ хэд вэ"))

	// New sender: profile lookup first, then the reply send.
	require.Len(t, *f.calls, 2)
	assert.Equal(t, "/user_1", (*f.calls)[0].path)
	assert.Equal(t, "/me/messages", (*f.calls)[1].path)
	assert.Equal(t, "Сайн байна уу", (*f.calls)[1].body["message"].(map[string]any)["text"])

	require.Len(t, f.uow.customers.created, 1)
	assert.Equal(t, entity.LeadScoreCold, f.uow.customers.created[0].LeadScore)
	require.NotNil(t, f.uow.customers.created[0].Name)
	assert.Equal(t, "Бат", *f.uow.customers.created[0].Name)

	require.Len(t, f.uow.conversations.created, 1)
	conv := f.uow.conversations.created[0]
	assert.True(t, conv.AiEnabled)
	assert.Equal(t, "user_1", conv.PlatformConversationId)

	require.NotNil(t, f.uow.conversations.updated)
	require.Len(t, f.uow.conversations.updated.Messages, 2)
	assert.Equal(t, "Цүнхний үнэ хэд вэ", f.uow.conversations.updated.Messages[0].Content)

	require.Len(t, f.publisher.messages, 1)
}

func TestHandleEventIgnoresUnknownObject(t *testing.T) {
	f := newWebhookFixture(t)

	payload := messagingPayload("x")
	payload.Object = "user"
	f.svc.HandleEvent(context.Background(), payload)

	assert.Empty(t, f.agent.inputs)
	assert.Empty(t, *f.calls)
}

func TestHandleEventNoAccountIsSilent(t *testing.T) {
	f := newWebhookFixture(t)
	f.uow.socials.findOne = func() (*entity.SocialAccount, error) { return nil, nil }

	f.svc.HandleEvent(context.Background(), messagingPayload("x"))

	assert.Empty(t, f.agent.inputs)
	assert.Empty(t, *f.calls)
}

func TestHandleEventAiDisabledStoresOnly(t *testing.T) {
	f := newWebhookFixture(t)
	name := "Бат"
	f.uow.customers.customer = &entity.Customer{Id: uuid.New(), Name: &name, LeadScore: entity.LeadScoreWarm}
	f.uow.conversations.conversation = &entity.Conversation{
		Id:        uuid.New(),
		Status:    entity.ConversationStatusActive,
		AiEnabled: false,
	}

	f.svc.HandleEvent(context.Background(), messagingPayload("Асуулт байна"))

	assert.Empty(t, f.agent.inputs)
	assert.Empty(t, *f.calls)
	require.NotNil(t, f.uow.conversations.updated)
	require.Len(t, f.uow.conversations.updated.Messages, 1)
	assert.Equal(t, constant.MessageRoleUser, f.uow.conversations.updated.Messages[0].Role)
	require.NotNil(t, f.uow.customers.updated)
	assert.NotNil(t, f.uow.customers.updated.LastInteractionAt)
}

func TestHandleEventUntrainedFallback(t *testing.T) {
	f := newWebhookFixture(t)
	f.agent.err = serverutils.NewAppError(serverutils.CodeNoResearch, http.StatusConflict, "Project has no research profile")

	f.svc.HandleEvent(context.Background(), messagingPayload("Сайн уу"))

	// Profile lookup plus the canned reply.
	require.Len(t, *f.calls, 2)
	assert.Equal(t, constant.UntrainedWebhookReply, (*f.calls)[1].body["message"].(map[string]any)["text"])
	assert.Nil(t, f.uow.conversations.updated)
}

func TestHandleEventSendsImagesWithMarker(t *testing.T) {
	f := newWebhookFixture(t)
	name := "Бат"
	f.uow.customers.customer = &entity.Customer{Id: uuid.New(), Name: &name, LeadScore: entity.LeadScoreWarm}
	f.uow.conversations.conversation = &entity.Conversation{
		Id:        uuid.New(),
		Status:    entity.ConversationStatusActive,
		AiEnabled: true,
	}
	f.agent.decision = &TurnDecision{
		Reply: "Энэ загварууд байна",
		ImageProducts: []*entity.Product{
			{Id: uuid.New(), Name: "Цүнх", Images: []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}},
			{Id: uuid.New(), Name: "Гутал", Images: []string{"https://cdn.example.com/3.jpg", "https://cdn.example.com/4.jpg"}},
		},
	}

	f.svc.HandleEvent(context.Background(), messagingPayload("Зургаа харуулаач"))

	// One text send plus at most MaxWebhookImageSends attachments.
	sends := 0
	for _, call := range *f.calls {
		if call.path == "/me/messages" {
			sends++
		}
	}
	assert.Equal(t, 1+constant.MaxWebhookImageSends, sends)

	stored := f.uow.conversations.updated.Messages[1].Content
	assert.True(t, strings.HasSuffix(stored, constant.ImageSentMarker))
	assert.True(t, f.uow.conversations.updated.ImagesAlreadySent())
}

func TestHandleEventImagePolicyFollowsHistory(t *testing.T) {
	f := newWebhookFixture(t)
	name := "Бат"
	f.uow.customers.customer = &entity.Customer{Id: uuid.New(), Name: &name, LeadScore: entity.LeadScoreWarm}
	f.uow.conversations.conversation = &entity.Conversation{
		Id:        uuid.New(),
		Status:    entity.ConversationStatusActive,
		AiEnabled: true,
		Messages: []entity.Message{
			{Role: constant.MessageRoleAssistant, Content: "Энд байна" + constant.ImageSentMarker},
		},
	}

	f.svc.HandleEvent(context.Background(), messagingPayload("Өөр юу байна"))

	require.Len(t, f.agent.inputs, 1)
	assert.False(t, f.agent.inputs[0].ImagesAllowed)
	assert.True(t, f.agent.inputs[0].OrderingAllowed)
	assert.Equal(t, constant.KnowledgeLimitDefault, f.agent.inputs[0].KnowledgeLimit)
}

func TestHandleEventCreatesAgentOrder(t *testing.T) {
	f := newWebhookFixture(t)
	name := "Бат"
	f.uow.customers.customer = &entity.Customer{Id: uuid.New(), Name: &name, LeadScore: entity.LeadScoreHot}
	f.uow.conversations.conversation = &entity.Conversation{
		Id:        uuid.New(),
		Status:    entity.ConversationStatusActive,
		AiEnabled: true,
	}
	f.agent.decision = &TurnDecision{
		Reply:        "Захиалга бүртгэлээ",
		OrderRequest: &decision.OrderRequest{ProductId: uuid.New().String(), Quantity: 1},
	}

	f.svc.HandleEvent(context.Background(), messagingPayload("Авъя"))

	require.Len(t, f.orders.created, 1)
}

func TestHandleEventCommentReply(t *testing.T) {
	f := newWebhookFixture(t)
	f.agent.decision = &TurnDecision{Reply: "Үнэ 45000 төгрөг"}

	f.svc.HandleEvent(context.Background(), commentPayload("user_9", "Үнэ хэд вэ"))

	require.Len(t, f.agent.inputs, 1)
	in := f.agent.inputs[0]
	assert.Nil(t, in.History)
	assert.Equal(t, constant.KnowledgeLimitComment, in.KnowledgeLimit)
	assert.False(t, in.ImagesAllowed)
	assert.False(t, in.OrderingAllowed)
	require.NotNil(t, in.Customer)
	assert.Equal(t, "Сараа", in.Customer.Name)

	require.Len(t, *f.calls, 1)
	assert.Equal(t, "/cmt_1/comments", (*f.calls)[0].path)

	// A commenter becomes a warm lead.
	require.Len(t, f.uow.customers.created, 1)
	assert.Equal(t, entity.LeadScoreWarm, f.uow.customers.created[0].LeadScore)
}

func TestHandleEventCommentLongReplyInvitesToMessenger(t *testing.T) {
	f := newWebhookFixture(t)
	f.agent.decision = &TurnDecision{Reply: strings.Repeat("дэлгэрэнгүй мэдээлэл ", 10)}

	f.svc.HandleEvent(context.Background(), commentPayload("user_9", "Дэлгэрэнгүй?"))

	require.Len(t, *f.calls, 2)
	assert.Equal(t, "/cmt_1/comments", (*f.calls)[1].path)
	assert.Equal(t, constant.MessengerInviteSuffix, (*f.calls)[1].body["message"])
}

func TestHandleEventCommentFromPageIgnored(t *testing.T) {
	f := newWebhookFixture(t)

	f.svc.HandleEvent(context.Background(), commentPayload("page_1", "Баярлалаа"))

	assert.Empty(t, f.agent.inputs)
	assert.Empty(t, *f.calls)
}

// serialAgent flags any two turns running at the same time.
type serialAgent struct {
	inFlight int32
	overlaps int32
	calls    int32
}

func (a *serialAgent) Chat(context.Context, *dto.ChatRequest) (*dto.ChatResponse, error) {
	panic("not used")
}

func (a *serialAgent) WidgetChat(context.Context, *dto.WidgetChatRequest) (*dto.WidgetChatResponse, error) {
	panic("not used")
}

func (a *serialAgent) RunTurn(context.Context, TurnInput) (*TurnDecision, error) {
	if atomic.AddInt32(&a.inFlight, 1) > 1 {
		atomic.AddInt32(&a.overlaps, 1)
	}
	time.Sleep(2 * time.Millisecond)
	atomic.AddInt32(&a.inFlight, -1)
	atomic.AddInt32(&a.calls, 1)
	return &TurnDecision{Reply: "За"}, nil
}

func TestHandleEventSerializesSameConversation(t *testing.T) {
	uow := newFakeUow()
	account := &entity.SocialAccount{
		Id:          uuid.New(),
		ProjectId:   uuid.New(),
		Platform:    "facebook",
		PageId:      "page_1",
		AccessToken: "tok",
		IsActive:    true,
	}
	uow.socials.findOne = func() (*entity.SocialAccount, error) { return account, nil }
	name := "Бат"
	uow.customers.customer = &entity.Customer{Id: uuid.New(), Name: &name, LeadScore: entity.LeadScoreWarm}
	uow.conversations.conversation = &entity.Conversation{
		Id:        uuid.New(),
		Status:    entity.ConversationStatusActive,
		AiEnabled: true,
	}
	agent := &serialAgent{}
	client, _ := graphStub(t)
	svc := NewWebhookService(&fakeUowFactory{uow: uow}, agent, &fakeOrderService{}, &fakePublisher{}, client, "secret", convlock.New(), nopLogger{})

	const deliveries = 8
	payload := messagingPayload("Сайн уу")
	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.HandleEvent(context.Background(), payload)
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&agent.overlaps))
	assert.EqualValues(t, deliveries, atomic.LoadInt32(&agent.calls))
	// Every redelivered turn lands; none overwrites another's append.
	assert.Len(t, uow.conversations.conversation.Messages, 2*deliveries)
}
