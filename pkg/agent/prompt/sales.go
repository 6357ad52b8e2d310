// Package prompt assembles the sales-turn message stack. The system prompt
// layers, top to bottom: operator knowledge (highest precedence, verbatim
// CTA), greeting rule, persona, research document, customer profile,
// product catalog, image policy and the JSON output contract.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-sales-be/internal/entity"
	"ai-sales-be/pkg/llm"
)

// CustomerInfo is the slice of customer state the model gets to see.
type CustomerInfo struct {
	Name              string
	PreviousPurchases int
	LeadScore         string
}

// SalesTurnInput carries everything one turn needs.
type SalesTurnInput struct {
	Research       *entity.ResearchDocument
	History        []entity.Message
	Message        string
	Customer       *CustomerInfo
	KnowledgeBlock string
	Products       []*entity.Product
	// ImagesAllowed is false once a prior turn in this conversation sent
	// images; the contract then omits the image fields entirely.
	ImagesAllowed bool
	// OrderingAllowed enables the create_order clause of the contract.
	// Comment replies, for example, never open orders.
	OrderingAllowed bool
	// DetailProduct is set when the intent classifier matched a
	// detail-seeking question to a catalog product.
	DetailProduct *entity.Product
}

// BuildSalesTurn returns the full message stack for one agent turn:
// system prompt, prior history, then the new customer message.
func BuildSalesTurn(in SalesTurnInput) []llm.Message {
	messages := make([]llm.Message, 0, len(in.History)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: buildSystemPrompt(in),
	})
	for _, m := range in.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: in.Message})
	return messages
}

func buildSystemPrompt(in SalesTurnInput) string {
	alreadyGreeted := len(in.History) > 0

	var b strings.Builder

	fmt.Fprintf(&b, "Та %q бизнесийн AI борлуулалтын туслах юм.\n", in.Research.BusinessSummary)

	if in.KnowledgeBlock != "" {
		b.WriteString(knowledgeBlock(in.KnowledgeBlock))
	}

	b.WriteString("\n## ХАМГИЙН ЧУХАЛ ДҮРЭМ:\n")
	if alreadyGreeted {
		b.WriteString(`⚠️ АНХААР: Энэ харилцаа ҮРГЭЛЖИЛЖ байна! Та аль хэдийн мэндчилсэн!
- ДАХИН МЭНДЧИЛЭХГҮЙ! "Сайн байна уу", "Баярлалаа холбогдсонд" гэх мэт БҮҮ хэл!
- Шууд асуултад хариул эсвэл яриагаа үргэлжлүүл
`)
	} else {
		b.WriteString("- Энэ бол ШИНЭ харилцаа, мэндчилж болно\n")
	}

	tone := in.Research.ToneGuidelines
	if tone == "" {
		tone = "Хүндэтгэлтэй, найрсаг"
	}
	b.WriteString("\n## Таны дүр:\n")
	b.WriteString("- Найрсаг, туслахад бэлэн борлуулагч (РОБОТ БИШ, ХҮНИЙ ШИГ)\n")
	fmt.Fprintf(&b, "- Хэв маяг: %s\n", tone)

	b.WriteString("\n## Бизнесийн мэдлэг:\n")
	if doc, err := json.MarshalIndent(in.Research, "", "  "); err == nil {
		b.Write(doc)
		b.WriteByte('\n')
	}

	b.WriteString("\n## Харилцагчийн мэдээлэл:\n")
	if in.Customer != nil {
		name := in.Customer.Name
		if name == "" {
			name = "Тодорхойгүй"
		}
		fmt.Fprintf(&b, "- Нэр: %s\n", name)
		fmt.Fprintf(&b, "- Өмнөх худалдан авалт: %d\n", in.Customer.PreviousPurchases)
		if in.Customer.LeadScore != "" {
			fmt.Fprintf(&b, "- Сонирхлын түвшин: %s\n", in.Customer.LeadScore)
		}
	} else {
		b.WriteString("Шинэ харилцагч\n")
	}

	b.WriteString("\n## Хариулах дүрэм:\n")
	b.WriteString("1. Монгол хэлээр ярь\n")
	b.WriteString("2. Товч, тодорхой хариулт (1-3 өгүүлбэр)\n")
	b.WriteString("3. \"Эрхэм үйлчлүүлэгч\" гэж БҮҮ хэл\n")
	if alreadyGreeted {
		b.WriteString("4. ДАХИН МЭНДЧИЛЭХГҮЙ!\n")
	} else {
		b.WriteString("4. Мэндчилж болно\n")
	}
	b.WriteString("5. Шууд хариулт өг, урт тайлбар хэрэггүй\n")
	b.WriteString("6. CTA (захиалга авах үед): Платформ эзний заасан яг тэр үг хэллэгийг хэрэглэ!\n")

	if len(in.Products) > 0 {
		b.WriteString("\n## Бүтээгдэхүүнүүд:\n")
		for _, p := range in.Products {
			price := "Тодорхойгүй"
			if p.Price != nil {
				price = fmt.Sprintf("%.0f₮", *p.Price)
			}
			imageNote := ""
			if p.HasImages() {
				imageNote = fmt.Sprintf(", %d зурагтай", len(p.Images))
			}
			fmt.Fprintf(&b, "- %q: Үнэ %s (ID: %s%s)\n", p.Name, price, p.Id, imageNote)
		}
	}

	if in.DetailProduct != nil {
		fmt.Fprintf(&b, "\n## ДЭЛГЭРЭНГҮЙ АСУУЛТ:\nХарилцагч %q бүтээгдэхүүний дэлгэрэнгүй мэдээлэл асууж байна. Тайлбар, онцлог, үнийг бүрэн оруул:\n", in.DetailProduct.Name)
		fmt.Fprintf(&b, "- Тайлбар: %s\n", in.DetailProduct.Description)
		if len(in.DetailProduct.Features) > 0 {
			fmt.Fprintf(&b, "- Онцлогууд: %s\n", strings.Join(in.DetailProduct.Features, ", "))
		}
	}

	if in.ImagesAllowed {
		b.WriteString("\n## ЗУРАГ ИЛГЭЭХ ДҮРЭМ:\n")
		b.WriteString("- Харилцагч бүтээгдэхүүний зураг үзэхийг хүсвэл, эсвэл бүтээгдэхүүний талаар сонирхож байвал зураг илгээ\n")
		b.WriteString("- Зураг илгээхдээ тухайн бүтээгдэхүүний ID-г заана уу\n")
		b.WriteString("- Хэрэв олон бүтээгдэхүүний зураг хүсвэл, хамгийн их 3 бүтээгдэхүүний зураг илгээ\n")
	} else {
		b.WriteString("\n## ЗУРАГ ИЛГЭЭХ ДҮРЭМ:\n")
		b.WriteString("- Энэ харилцаанд аль хэдийн зураг илгээсэн. ДАХИН зураг илгээхгүй!\n")
	}

	b.WriteString("\n## ХАРИУЛТЫН ФОРМАТ (JSON):\nЗаавал дараах JSON форматаар хариулна уу:\n{\n")
	b.WriteString("  \"message\": \"Таны хариулт энд\",\n")
	b.WriteString("  \"send_images_for_products\": [\"product_id_1\"]")
	if in.OrderingAllowed {
		b.WriteString(",\n  \"create_order\": {\"product_id\": \"...\", \"quantity\": 1, \"customer_name\": \"...\", \"phone\": \"...\", \"address\": \"...\"}")
		b.WriteString("\n}\n")
		b.WriteString("Зураг илгээхгүй бол хоосон массив []. Харилцагч захиалга өгөхөд бэлэн, шаардлагатай мэдээллээ өгсөн үед л create_order-г оруул; бусад үед бүү оруул.\n")
	} else {
		b.WriteString("\n}\n")
		b.WriteString("Зураг илгээхгүй бол хоосон массив [].\n")
	}

	return b.String()
}

func knowledgeBlock(block string) string {
	lines := strings.Split(block, "\n\n")
	var numbered []string
	n := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n++
		numbered = append(numbered, fmt.Sprintf("### %d. %s", n, line))
	}

	var b strings.Builder
	b.WriteString("\n#####################################################################\n")
	b.WriteString("## 🚨🚨🚨 ПЛАТФОРМ ЭЗНИЙ ЗААВАР - ХАМГИЙН ДЭЭД ЭРЭМБЭ! 🚨🚨🚨\n")
	b.WriteString("#####################################################################\n\n")
	b.WriteString(strings.Join(numbered, "\n\n"))
	b.WriteString("\n\n#####################################################################\n")
	b.WriteString("⛔ ЭНЭ ЗААВРУУДЫГ ЗӨРЧВӨЛ БҮТЭЛГҮЙТНЭ!\n")
	b.WriteString("⛔ CTA заавар байвал ЯГ ТЭР ҮГЭЭР хэл (өөрчлөхгүй!)\n")
	b.WriteString("⛔ Бизнес эзний мэдээллээс ИЛҮҮ ЧУХАЛ!\n")
	b.WriteString("#####################################################################\n")
	return b.String()
}
