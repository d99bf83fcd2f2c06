package gemini

import (
	"fmt"
	"strings"

	"github.com/niksmo/shop-fusion/internal/core/domain"
)

func descriptionPrompt(name, category string) string {
	return fmt.Sprintf(`Write a sophisticated, short, and selling product description for a fashion item suitable for the Indian market.
Product Name: %s.
Category: %s.
Keep it under 50 words. Focus on material, style, and occasion.`, name, category)
}

func imagePrompt(subject string) string {
	return "Professional studio product photography of " + subject +
		", minimal white background, high fashion, 4k, highly detailed"
}

// catalogContext renders one "- brand name (₹price, category)" line per
// product.
func catalogContext(catalog []domain.Product) string {
	var b strings.Builder
	for i, p := range catalog {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s %s (₹%s, %s)",
			p.Brand, p.Name, p.Price.String(), p.Category)
	}
	return b.String()
}

func advicePrompt(query string, catalog []domain.Product) string {
	return fmt.Sprintf(`You are a fashion stylist for an Indian fashion store.

User Query: %q

Available Products in Store:
%s

Task: Recommend items from the store that match the user's request.
Explain why they work well together. Be polite, concise, and professional.
Focus on current Indian fashion trends (ethnic, fusion, western).
If no specific product matches perfectly, suggest the closest option or general fashion advice.`,
		query, catalogContext(catalog))
}
