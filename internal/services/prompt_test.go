// internal/services/prompt_test.go
package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/elevendocs/elevendocs-backend/internal/models"
)

func TestLengthTargetFor(t *testing.T) {
	tests := []struct {
		price    float64
		expected string
	}{
		{0, "2-3 pages"},
		{299, "2-3 pages"},
		{300, "3-5 pages"}, // lower bounds are inclusive
		{599, "3-5 pages"},
		{600, "6-9 pages"},
		{999, "6-9 pages"},
		{1000, "10-14 pages"},
		{2500, "10-14 pages"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LengthTargetFor(tt.price), "price %.0f", tt.price)
	}
}

func TestBuildPromptIncludesProductDetails(t *testing.T) {
	product := &models.Product{
		ID:       "p1",
		Name:     "Microeconomics Lecture Notes",
		Category: models.CategoryEconomics,
		Price:    399,
		Tags:     pq.StringArray{"economics", "university"},
	}

	prompt := BuildPrompt(product)

	assert.Contains(t, prompt, "Microeconomics Lecture Notes")
	assert.Contains(t, prompt, "Economics")
	assert.Contains(t, prompt, "economics, university")
	assert.Contains(t, prompt, "3-5 pages")
}

func TestBuildPromptShortcutsTable(t *testing.T) {
	product := &models.Product{
		ID:       "p1",
		Name:     "VS Code Shortcuts Cheatsheet",
		Category: models.CategoryCodingTech,
		Price:    149,
	}

	prompt := BuildPrompt(product)
	assert.Contains(t, prompt, "Markdown table with two columns")

	plain := &models.Product{ID: "p2", Name: "Calculus Notes", Category: models.CategoryAcademicNotes}
	assert.NotContains(t, BuildPrompt(plain), "Markdown table with two columns")
}

func TestBuildPromptNoConclusionCategories(t *testing.T) {
	product := &models.Product{ID: "p1", Name: "Anything", Category: models.CategoryCodingTech}
	prompt := BuildPrompt(product)

	assert.Contains(t, prompt, "DO NOT include a conclusion")
	for _, category := range []models.ProductCategory{
		models.CategoryCodingTech,
		models.CategoryPlannersOrganizers,
		models.CategoryPersonalGrowth,
		models.CategoryCodeLibraries,
	} {
		assert.Contains(t, prompt, string(category))
	}
}
