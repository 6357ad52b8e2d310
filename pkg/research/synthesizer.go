// Package research turns a tenant's raw business data into the structured
// sales-knowledge document the agent runs on. Synthesis is a single LLM
// call with a mandatory full-schema JSON reply; a document that does not
// parse is a hard failure and never replaces a prior valid profile.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-sales-be/internal/entity"
	"ai-sales-be/pkg/llm"
)

// Input is everything the synthesizer reads about a project.
type Input struct {
	Project *entity.Project
	// Products is the complete catalog, inactive entries included;
	// the model needs to know what exists even if it cannot offer it.
	Products []*entity.Product
	Brand    *entity.BrandProfile
	// KnowledgeBlock is the aggregated research-purpose operator knowledge.
	KnowledgeBlock string
}

type Synthesizer struct {
	provider llm.LLMProvider
}

func NewSynthesizer(provider llm.LLMProvider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Synthesize runs the research call and returns the parsed document. The
// brand profile's WebsiteURL, when set, overwrites whatever the model
// produced; the operator's value is authoritative.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (*entity.ResearchDocument, error) {
	messages := []llm.Message{
		{Role: "system", Content: buildSystemPrompt(in.KnowledgeBlock)},
		{Role: "user", Content: buildUserPrompt(in)},
	}

	output, err := s.provider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return nil, fmt.Errorf("research synthesis: %w", err)
	}

	var doc entity.ResearchDocument
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, fmt.Errorf("research synthesis: invalid document: %w", err)
	}
	if strings.TrimSpace(doc.BusinessSummary) == "" {
		return nil, fmt.Errorf("research synthesis: document missing business_summary")
	}

	if in.Brand != nil && in.Brand.WebsiteURL != "" {
		doc.WebsiteURL = in.Brand.WebsiteURL
	}

	return &doc, nil
}

func buildSystemPrompt(knowledgeBlock string) string {
	var b strings.Builder
	b.WriteString("Та Монгол бизнесүүдэд зориулсан AI борлуулалтын туслах бэлтгэх судлаач юм.\n")

	if knowledgeBlock != "" {
		lines := strings.Split(knowledgeBlock, "\n\n")
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
		b.WriteString("\n#####################################################################\n")
		b.WriteString("## 🚨🚨🚨 ПЛАТФОРМ ЭЗНИЙ ЗААВАР - ХАМГИЙН ДЭЭД ЭРЭМБЭ! 🚨🚨🚨\n")
		b.WriteString("#####################################################################\n\n")
		b.WriteString(strings.Join(numbered, "\n\n"))
		b.WriteString("\n\n#####################################################################\n")
		b.WriteString("⛔ ЭНЭ ЗААВРУУДЫГ СУДАЛГААНД 100% ТУСГАХ!\n")
		b.WriteString("⛔ Бизнес эзний мэдээллээс ИЛҮҮ ЧУХАЛ!\n")
		b.WriteString("⛔ Заавар зөрчвөл судалгаа БҮТЭЛГҮЙТНЭ!\n")
		b.WriteString("#####################################################################\n")
	}

	b.WriteString(`
Таны үүрэг:
1. Бизнесийн мэдээллийг задлан шинжлэх
2. Бүтээгдэхүүний онцлог, давуу талыг тодорхойлох
3. Зорилтот хэрэглэгчдийг тодорхойлох
4. Түгээмэл асуултууд болон хариултуудыг бэлдэх
5. Борлуулалтын стратеги боловсруулах
6. Эсэргүүцлийг шийдвэрлэх аргуудыг бэлдэх

Хариултаа JSON форматаар өгнө үү.`)
	return b.String()
}

func buildUserPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("Дараах бизнесийн мэдээллийг судалж, AI борлуулалтын туслахад зориулсан дэлгэрэнгүй заавар бэлдэнэ үү:\n\n")
	fmt.Fprintf(&b, "**Бизнесийн нэр:** %s\n", in.Project.Name)
	fmt.Fprintf(&b, "**Салбар:** %s\n", orMissing(in.Project.Industry))
	fmt.Fprintf(&b, "**Тайлбар:** %s\n", orMissing(in.Project.Description))

	b.WriteString("\n**Бүтээгдэхүүнүүд:**\n")
	for i, p := range in.Products {
		price := "Тодорхойгүй"
		if p.Price != nil {
			price = fmt.Sprintf("%.0f₮", *p.Price)
		}
		features := "Байхгүй"
		if len(p.Features) > 0 {
			features = strings.Join(p.Features, ", ")
		}
		fmt.Fprintf(&b, "\n%d. %s\n   - Тайлбар: %s\n   - Үнэ: %s\n   - Онцлогууд: %s\n",
			i+1, p.Name, orMissing(p.Description), price, features)
	}

	if in.Brand != nil {
		b.WriteString("\n**Брэндийн мэдээлэл:**\n")
		fmt.Fprintf(&b, "- Брэндийн түүх: %s\n", orMissing(in.Brand.Story))
		fmt.Fprintf(&b, "- Дуу хоолой: %s\n", orMissing(in.Brand.Voice))
		fmt.Fprintf(&b, "- Зорилтот хэрэглэгч: %s\n", orMissing(in.Brand.TargetAudience))
		selling := "Байхгүй"
		if len(in.Brand.SellingPoints) > 0 {
			selling = strings.Join(in.Brand.SellingPoints, ", ")
		}
		fmt.Fprintf(&b, "- Онцлог давуу тал: %s\n", selling)
		if in.Brand.WebsiteURL != "" {
			fmt.Fprintf(&b, "- Вэбсайт: %s\n", in.Brand.WebsiteURL)
		}
	}

	b.WriteString("\nДараах JSON форматаар хариулна уу:\n")
	b.WriteString(documentSchema)
	return b.String()
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Байхгүй"
	}
	return s
}

// documentSchema mirrors entity.ResearchDocument field for field. Keep the
// two in sync when the schema grows.
const documentSchema = `{
  "business_summary": "Бизнесийн товч танилцуулга",
  "value_proposition": "Үнэ цэнийн санал",
  "sales_channel": "website | delivery | both",
  "is_digital_product": false,
  "purchase_instructions": "Худалдан авах заавар",
  "website_url": "",
  "market_analysis": "Зах зээлийн шинжилгээ",
  "target_audience": "Зорилтот хэрэглэгч",
  "customer_psychology": {
    "pain_points": ["..."],
    "desires": ["..."],
    "fears": ["..."],
    "buying_triggers": ["..."]
  },
  "customer_behavior": "Хэрэглэгчийн зан төлөв",
  "brand_voice": "Брэндийн дуу хоолой",
  "key_selling_points": ["Гол давуу тал 1", "Гол давуу тал 2"],
  "product_usps": [
    {"product_name": "Бүтээгдэхүүний нэр", "usp": "Онцлог давуу тал"}
  ],
  "product_knowledge": [
    {
      "product_name": "Бүтээгдэхүүний нэр",
      "short_pitch": "Богино танилцуулга",
      "benefits": ["Ашиг тус 1"],
      "features": ["Онцлог 1"],
      "ideal_for": "Хэнд тохирох",
      "not_for": "Хэнд тохирохгүй"
    }
  ],
  "sales_scripts": {
    "opening": "Нээлтийн скрипт",
    "qualifying": "Тодруулах скрипт",
    "presenting": "Танилцуулах скрипт",
    "closing": "Хаах скрипт",
    "follow_up": "Дагаж холбогдох скрипт"
  },
  "common_questions": [
    {"question": "Түгээмэл асуулт", "answer": "Хариулт"}
  ],
  "objection_handling": [
    {"objection": "Эсэргүүцэл", "response": "Хариу"}
  ],
  "urgency_tactics": ["..."],
  "social_proof": "Нийгмийн баталгаа",
  "sales_tips": ["Борлуулалтын зөвлөгөө 1"],
  "greeting_style": "Мэндчилгээний хэв маяг",
  "tone_guidelines": "Яриа өрнүүлэх зааварчилгаа",
  "do_not_say": ["..."]
}`
