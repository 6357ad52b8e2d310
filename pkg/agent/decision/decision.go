// Package decision parses the model's structured sales-turn output. The
// schema is canonical and strict: one JSON object with "message",
// "send_images_for_products" and optional "create_order". Anything else
// degrades to the fallback reply rather than guessing at field aliases.
package decision

import (
	"encoding/json"
	"strings"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/entity"

	"github.com/google/uuid"
)

// OrderRequest is the model's proposal to open an order. It is a request
// for the order service, never applied directly.
type OrderRequest struct {
	ProductId    string  `json:"product_id"`
	Quantity     int     `json:"quantity"`
	CustomerName string  `json:"customer_name,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Address      string  `json:"address,omitempty"`
	Note         string  `json:"note,omitempty"`
	TotalAmount  float64 `json:"total_amount,omitempty"`
}

type raw struct {
	Message               string        `json:"message"`
	SendImagesForProducts []string      `json:"send_images_for_products"`
	CreateOrder           *OrderRequest `json:"create_order,omitempty"`
}

// Decision is one fully resolved agent turn.
type Decision struct {
	Message string
	// ImageProducts are catalog products whose images this turn sends,
	// already validated and capped. Empty when the policy forbids sending.
	ImageProducts []*entity.Product
	CreateOrder   *OrderRequest
	// Fallback marks a turn where the model output was unusable and the
	// canned apology was substituted.
	Fallback bool
}

// Fallback is the decision used when the model output cannot be trusted.
func Fallback() Decision {
	return Decision{
		Message:  constant.FallbackReply,
		Fallback: true,
	}
}

// Parse decodes the model output and resolves requested image sends against
// the catalog. Unknown or imageless product ids are dropped silently; at
// most MaxImageProductsPerTurn products survive. allowImages reflects the
// one-burst policy: when false the image list is discarded outright.
func Parse(output string, catalog []*entity.Product, allowImages bool) Decision {
	payload := extractJSON(output)
	if payload == "" {
		return Fallback()
	}

	var r raw
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return Fallback()
	}
	if strings.TrimSpace(r.Message) == "" {
		return Fallback()
	}

	d := Decision{
		Message:     strings.TrimSpace(r.Message),
		CreateOrder: r.CreateOrder,
	}

	if allowImages && len(r.SendImagesForProducts) > 0 {
		byId := make(map[uuid.UUID]*entity.Product, len(catalog))
		for _, p := range catalog {
			byId[p.Id] = p
		}
		seen := make(map[uuid.UUID]bool)
		for _, idStr := range r.SendImagesForProducts {
			id, err := uuid.Parse(strings.TrimSpace(idStr))
			if err != nil {
				continue
			}
			p, ok := byId[id]
			if !ok || !p.HasImages() || seen[id] {
				continue
			}
			seen[id] = true
			d.ImageProducts = append(d.ImageProducts, p)
			if len(d.ImageProducts) == constant.MaxImageProductsPerTurn {
				break
			}
		}
	}

	return d
}

// extractJSON unwraps markdown code fences and trims chatter around the
// first top-level JSON object. Models wrap output in ``` despite the
// structured-output flag often enough that this is load bearing.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
