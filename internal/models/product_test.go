// internal/models/product_test.go
package models

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAdHocProduct(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	product := NewAdHocProduct("Write a guide to sourdough baking", now)

	assert.Equal(t, fmt.Sprintf("ai-pdf-%d", now.UnixMilli()), product.ID)
	assert.Equal(t, CategoryAIServices, product.Category)
	assert.Contains(t, product.Description, "sourdough")
}

func TestNewAdHocProductTruncatesLongPrompt(t *testing.T) {
	prompt := strings.Repeat("x", 200)
	product := NewAdHocProduct(prompt, time.Now())

	assert.Contains(t, product.Description, strings.Repeat("x", 50)+"...")
	assert.NotContains(t, product.Description, strings.Repeat("x", 51))
}

func TestHasPurchased(t *testing.T) {
	user := &User{PurchaseHistory: []string{"a", "b"}}

	assert.True(t, user.HasPurchased("a"))
	assert.False(t, user.HasPurchased("c"))
	assert.False(t, (&User{}).HasPurchased("a"))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("Coding & Tech"))
	assert.True(t, ValidCategory("AI Services"))
	assert.False(t, ValidCategory("Unknown"))
	assert.Len(t, AllCategories, 13)
}
