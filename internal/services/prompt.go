// internal/services/prompt.go
package services

import (
	"fmt"
	"strings"

	"github.com/elevendocs/elevendocs-backend/internal/models"
)

// lengthTiers maps a price to a document length target. Lower bounds are
// inclusive and the final tier covers everything down to zero, so every
// non-negative price maps to exactly one tier. Evaluated top down.
type lengthTier struct {
	minPrice float64
	target   string
}

var lengthTiers = []lengthTier{
	{minPrice: 1000, target: "10-14 pages"},
	{minPrice: 600, target: "6-9 pages"},
	{minPrice: 300, target: "3-5 pages"},
	{minPrice: 0, target: "2-3 pages"},
}

// LengthTargetFor returns the desired document length for a price.
func LengthTargetFor(price float64) string {
	for _, tier := range lengthTiers {
		if price >= tier.minPrice {
			return tier.target
		}
	}
	return lengthTiers[len(lengthTiers)-1].target
}

// noConclusionCategories lists categories whose documents must end on their
// last main point, without a trailing summary section.
var noConclusionCategories = map[models.ProductCategory]bool{
	models.CategoryCodingTech:         true,
	models.CategoryPlannersOrganizers: true,
	models.CategoryPersonalGrowth:     true,
	models.CategoryCodeLibraries:      true,
}

// formattingRule adds category- or product-specific formatting instructions
// to the prompt. Rules are a lookup table rather than inline branching so
// domain policy stays declarative.
type formattingRule struct {
	applies     func(*models.Product) bool
	instruction string
}

var formattingRules = []formattingRule{
	{
		applies: func(p *models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), "shortcuts")
		},
		instruction: `**Formatting for Shortcuts:** For lists of shortcuts (like keyboard shortcuts), use a Markdown table with two columns: "Shortcut" and "Description". This provides a clear and organized layout for the user.`,
	},
}

const baseFormattingInstruction = "Break down complex topics into smaller, digestible sections with clear headings. Use lists, tables, code blocks (for technical topics), and examples to enhance understanding."

func formattingInstructionsFor(product *models.Product) string {
	parts := []string{baseFormattingInstruction}
	for _, rule := range formattingRules {
		if rule.applies(product) {
			parts = append(parts, rule.instruction)
		}
	}
	return strings.Join(parts, "\n\n")
}

func noConclusionList() string {
	var names []string
	for _, c := range models.AllCategories {
		if noConclusionCategories[c] {
			names = append(names, fmt.Sprintf("'%s'", c))
		}
	}
	return strings.Join(names, ", ")
}

// BuildPrompt constructs the generation prompt for a catalog product. The
// system prompt (internal/ai) carries the completion-marker contract; this
// user prompt carries the product details, length target, and domain
// formatting policy.
func BuildPrompt(product *models.Product) string {
	return fmt.Sprintf(`Generate detailed, comprehensive content for a digital product with the following details:
- Name: %q
- Description: %q
- Category: %q
- Keywords: %q

**Content Depth and Length:**
- The desired length for this document is **%s** in a standard document. Please adhere to this length.
- %s

**Crucial Instructions:**
1. Your output must BE the document, not a description of it. Do not write meta-commentary. Your response should contain only the raw Markdown content for the document itself.
2. For the following categories, **DO NOT include a conclusion or summary section**: %s. The document should end on its last main point.`,
		product.Name,
		product.Description,
		product.Category,
		strings.Join(product.Tags, ", "),
		LengthTargetFor(product.Price),
		formattingInstructionsFor(product),
		noConclusionList(),
	)
}
