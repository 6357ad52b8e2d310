// Package knowledge folds operator-authored snippets into a single prompt
// block. Selection (active, tenant scope, category) happens at the
// repository layer; this package only orders, caps and joins.
package knowledge

import (
	"sort"
	"strings"

	"ai-sales-be/internal/constant"
	"ai-sales-be/internal/entity"
)

// Purpose decides which snippet categories feed the block.
type Purpose string

const (
	PurposeSales    Purpose = "sales"
	PurposeResearch Purpose = "research"
)

// CategoriesFor returns the snippet categories a purpose draws from.
// Both purposes include the shared "general" bucket.
func CategoriesFor(purpose Purpose) []string {
	switch purpose {
	case PurposeResearch:
		return []string{constant.KnowledgeCategoryResearch, constant.KnowledgeCategoryGeneral}
	default:
		return []string{constant.KnowledgeCategorySales, constant.KnowledgeCategoryGeneral}
	}
}

// Aggregate orders snippets by priority descending (stable on ties, so
// repository order breaks them), keeps at most limit entries and joins
// their content with blank lines. An empty result is valid: it means the
// operator has nothing to say for this purpose.
func Aggregate(snippets []*entity.KnowledgeSnippet, limit int) string {
	if len(snippets) == 0 || limit <= 0 {
		return ""
	}

	ordered := make([]*entity.KnowledgeSnippet, len(snippets))
	copy(ordered, snippets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	parts := make([]string, 0, len(ordered))
	for _, s := range ordered {
		content := strings.TrimSpace(s.Content)
		if content == "" {
			continue
		}
		parts = append(parts, content)
	}

	return strings.Join(parts, "\n\n")
}
