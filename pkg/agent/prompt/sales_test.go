package prompt

import (
	"strings"
	"testing"

	"ai-sales-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func baseInput() SalesTurnInput {
	return SalesTurnInput{
		Research: &entity.ResearchDocument{
			BusinessSummary: "Гар урлалын цүнх",
			ToneGuidelines:  "Найрсаг",
		},
		Message:       "Үнэ хэд вэ?",
		ImagesAllowed: true,
	}
}

func systemPrompt(t *testing.T, in SalesTurnInput) string {
	t.Helper()
	messages := BuildSalesTurn(in)
	assert.Equal(t, "system", messages[0].Role)
	return messages[0].Content
}

func TestBuildSalesTurnMessageStack(t *testing.T) {
	in := baseInput()
	in.History = []entity.Message{
		{Role: "user", Content: "Сайн уу"},
		{Role: "assistant", Content: "Сайн байна уу!"},
	}

	messages := BuildSalesTurn(in)

	assert.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "Сайн уу", messages[1].Content)
	assert.Equal(t, "assistant", messages[2].Role)
	assert.Equal(t, "user", messages[3].Role)
	assert.Equal(t, "Үнэ хэд вэ?", messages[3].Content)
}

func TestGreetingRule(t *testing.T) {
	t.Run("fresh conversation allows greeting", func(t *testing.T) {
		sys := systemPrompt(t, baseInput())
		assert.Contains(t, sys, "ШИНЭ харилцаа")
		assert.NotContains(t, sys, "ДАХИН МЭНДЧИЛЭХГҮЙ")
	})

	t.Run("any history forbids re-greeting", func(t *testing.T) {
		in := baseInput()
		in.History = []entity.Message{{Role: "user", Content: "x"}}
		sys := systemPrompt(t, in)
		assert.Contains(t, sys, "ДАХИН МЭНДЧИЛЭХГҮЙ")
		assert.NotContains(t, sys, "ШИНЭ харилцаа")
	})
}

func TestKnowledgeBlockPrecedence(t *testing.T) {
	in := baseInput()
	in.KnowledgeBlock = "Захиалга өгөхдөө 99110011 руу залгана уу"

	sys := systemPrompt(t, in)

	assert.Contains(t, sys, in.KnowledgeBlock)
	// Operator knowledge must come before everything except the opening line.
	knowledgeAt := strings.Index(sys, in.KnowledgeBlock)
	researchAt := strings.Index(sys, "Бизнесийн мэдлэг")
	assert.Less(t, knowledgeAt, researchAt)
}

func TestImagePolicyVariants(t *testing.T) {
	price := 25000.0
	in := baseInput()
	in.Products = []*entity.Product{
		{Name: "Цүнх", Price: &price, Images: []string{"a.jpg"}},
	}

	t.Run("allowed", func(t *testing.T) {
		in := in
		in.ImagesAllowed = true
		sys := systemPrompt(t, in)
		assert.Contains(t, sys, "зураг илгээ")
		assert.NotContains(t, sys, "ДАХИН зураг илгээхгүй")
	})

	t.Run("forbidden after prior send", func(t *testing.T) {
		in := in
		in.ImagesAllowed = false
		sys := systemPrompt(t, in)
		assert.Contains(t, sys, "ДАХИН зураг илгээхгүй")
	})
}

func TestOrderContractClause(t *testing.T) {
	t.Run("ordering allowed", func(t *testing.T) {
		in := baseInput()
		in.OrderingAllowed = true
		sys := systemPrompt(t, in)
		assert.Contains(t, sys, "create_order")
	})

	t.Run("ordering forbidden for comment replies", func(t *testing.T) {
		in := baseInput()
		in.OrderingAllowed = false
		sys := systemPrompt(t, in)
		assert.NotContains(t, sys, "create_order")
	})
}

func TestCustomerBlock(t *testing.T) {
	t.Run("known customer", func(t *testing.T) {
		in := baseInput()
		in.Customer = &CustomerInfo{Name: "Бат", PreviousPurchases: 2, LeadScore: "hot"}
		sys := systemPrompt(t, in)
		assert.Contains(t, sys, "Бат")
		assert.Contains(t, sys, "hot")
	})

	t.Run("anonymous visitor", func(t *testing.T) {
		sys := systemPrompt(t, baseInput())
		assert.Contains(t, sys, "Шинэ харилцагч")
	})
}

func TestProductCatalogListing(t *testing.T) {
	price := 25000.0
	in := baseInput()
	in.Products = []*entity.Product{
		{Name: "Цүнх", Price: &price, Images: []string{"a.jpg", "b.jpg"}},
	}

	sys := systemPrompt(t, in)

	assert.Contains(t, sys, "Цүнх")
	assert.Contains(t, sys, "25000")
	assert.Contains(t, sys, "2 зурагтай")
}

func TestResearchDocumentEmbeddedWhole(t *testing.T) {
	in := baseInput()
	in.Research.IsDigitalProduct = true
	in.Research.PurchaseInstructions = "Төлбөрийн дараа линк илгээнэ"

	sys := systemPrompt(t, in)

	// The document is serialized in full so channel mode, the digital flag,
	// and purchase instructions all reach the model.
	assert.Contains(t, sys, `"is_digital_product": true`)
	assert.Contains(t, sys, "Төлбөрийн дараа линк илгээнэ")
}
