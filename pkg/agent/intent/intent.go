// Package intent classifies what a customer message is after so the
// orchestrator can adjust the prompt and repair thin replies. The keyword
// classifier is deliberately cheap; an LLM-backed one can replace it behind
// the same interface.
package intent

import "strings"

type Kind string

const (
	KindGeneral Kind = "general"
	KindDetail  Kind = "detail" // asking for full product information
	KindBuying  Kind = "buying"
)

// Product is the minimal projection the classifier needs.
type Product struct {
	Id   string
	Name string
}

type Intent struct {
	Kind Kind
	// MatchedProduct is set for KindDetail when the message names a
	// catalog product.
	MatchedProduct *Product
}

type Classifier interface {
	Classify(message string, products []Product) Intent
}

// detailKeywords mark a request for full product information.
var detailKeywords = []string{
	"дэлгэрэнгүй",
	"тодруулга",
	"яг юу",
	"ямар онцлог",
	"талаар",
	"гэж юу",
}

// buyingKeywords mark purchase readiness.
var buyingKeywords = []string{
	"авъя",
	"авья",
	"авмаар",
	"захиалъя",
	"захиалмаар",
	"захиалга өгье",
	"худалдаж авна",
}

type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var _ Classifier = (*KeywordClassifier)(nil)

func (c *KeywordClassifier) Classify(message string, products []Product) Intent {
	lower := strings.ToLower(message)

	for _, kw := range buyingKeywords {
		if strings.Contains(lower, kw) {
			return Intent{Kind: KindBuying, MatchedProduct: matchProduct(lower, products)}
		}
	}

	for _, kw := range detailKeywords {
		if strings.Contains(lower, kw) {
			return Intent{Kind: KindDetail, MatchedProduct: matchProduct(lower, products)}
		}
	}

	return Intent{Kind: KindGeneral}
}

func matchProduct(lowerMessage string, products []Product) *Product {
	for i := range products {
		name := strings.ToLower(strings.TrimSpace(products[i].Name))
		if name == "" {
			continue
		}
		if strings.Contains(lowerMessage, name) {
			return &products[i]
		}
	}
	return nil
}
