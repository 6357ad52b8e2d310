package decision

import (
	"fmt"
	"testing"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func product(id uuid.UUID, images ...string) *entity.Product {
	return &entity.Product{Id: id, Name: "p-" + id.String()[:8], Images: images, IsActive: true}
}

func TestParseFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"empty output", ""},
		{"no json at all", "За сонссон, баярлалаа."},
		{"broken json", `{"message": "hi`},
		{"empty message field", `{"message": "   ", "send_images_for_products": []}`},
		{"wrong type for message", `{"message": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Parse(tt.output, nil, true)
			assert.True(t, d.Fallback)
			assert.Equal(t, constant.FallbackReply, d.Message)
			assert.Empty(t, d.ImageProducts)
			assert.Nil(t, d.CreateOrder)
		})
	}
}

func TestParsePlainObject(t *testing.T) {
	d := Parse(`{"message": "Сайн байна уу!", "send_images_for_products": []}`, nil, true)

	assert.False(t, d.Fallback)
	assert.Equal(t, "Сайн байна уу!", d.Message)
	assert.Empty(t, d.ImageProducts)
}

func TestParseUnwrapsCodeFences(t *testing.T) {
	output := "```json\n{\"message\": \"Тийм ээ\", \"send_images_for_products\": []}\n```"

	d := Parse(output, nil, true)

	assert.False(t, d.Fallback)
	assert.Equal(t, "Тийм ээ", d.Message)
}

func TestParseIgnoresChatterAroundObject(t *testing.T) {
	output := `Here is the answer: {"message": "За", "send_images_for_products": []} hope it helps`

	d := Parse(output, nil, true)

	assert.False(t, d.Fallback)
	assert.Equal(t, "За", d.Message)
}

func TestParseImageResolution(t *testing.T) {
	withImages := product(uuid.New(), "a.jpg")
	noImages := product(uuid.New())
	catalog := []*entity.Product{withImages, noImages}

	t.Run("unknown and imageless ids dropped", func(t *testing.T) {
		output := fmt.Sprintf(`{"message": "m", "send_images_for_products": ["%s", "%s", "%s", "not-a-uuid"]}`,
			withImages.Id, noImages.Id, uuid.New())

		d := Parse(output, catalog, true)

		assert.Len(t, d.ImageProducts, 1)
		assert.Equal(t, withImages.Id, d.ImageProducts[0].Id)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		output := fmt.Sprintf(`{"message": "m", "send_images_for_products": ["%s", "%s"]}`,
			withImages.Id, withImages.Id)

		d := Parse(output, catalog, true)

		assert.Len(t, d.ImageProducts, 1)
	})

	t.Run("capped at limit", func(t *testing.T) {
		big := make([]*entity.Product, 0, constant.MaxImageProductsPerTurn+2)
		ids := ""
		for i := 0; i < constant.MaxImageProductsPerTurn+2; i++ {
			p := product(uuid.New(), "x.jpg")
			big = append(big, p)
			if i > 0 {
				ids += ", "
			}
			ids += fmt.Sprintf("%q", p.Id.String())
		}
		output := fmt.Sprintf(`{"message": "m", "send_images_for_products": [%s]}`, ids)

		d := Parse(output, big, true)

		assert.Len(t, d.ImageProducts, constant.MaxImageProductsPerTurn)
	})

	t.Run("discarded when images not allowed", func(t *testing.T) {
		output := fmt.Sprintf(`{"message": "m", "send_images_for_products": ["%s"]}`, withImages.Id)

		d := Parse(output, catalog, false)

		assert.False(t, d.Fallback)
		assert.Empty(t, d.ImageProducts)
	})
}

func TestParseCreateOrder(t *testing.T) {
	pid := uuid.New()
	output := fmt.Sprintf(`{
		"message": "Захиалга бүртгэлээ",
		"send_images_for_products": [],
		"create_order": {
			"product_id": "%s",
			"quantity": 2,
			"customer_name": "Бат",
			"phone": "99112233",
			"address": "УБ",
			"total_amount": 50000
		}
	}`, pid)

	d := Parse(output, nil, true)

	assert.False(t, d.Fallback)
	if assert.NotNil(t, d.CreateOrder) {
		assert.Equal(t, pid.String(), d.CreateOrder.ProductId)
		assert.Equal(t, 2, d.CreateOrder.Quantity)
		assert.Equal(t, "Бат", d.CreateOrder.CustomerName)
		assert.Equal(t, float64(50000), d.CreateOrder.TotalAmount)
	}
}

func TestParseNoAliasProbing(t *testing.T) {
	// Legacy field names must not be recognized; the schema is canonical.
	output := `{"reply": "hand-rolled alias", "images": ["x"]}`

	d := Parse(output, nil, true)

	assert.True(t, d.Fallback)
}
