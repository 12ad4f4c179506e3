// internal/ai/generator_test.go
package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelOutputJSON(t *testing.T) {
	doc, err := parseModelOutput(`{"title": "My Guide", "content": "# My Guide\n\nBody."}`)

	require.NoError(t, err)
	assert.Equal(t, "My Guide", doc.Title)
	assert.Equal(t, "# My Guide\n\nBody.", doc.Content)
}

func TestParseModelOutputFencedJSON(t *testing.T) {
	raw := "```json\n{\"title\": \"My Guide\", \"content\": \"Body.\"}\n```"

	doc, err := parseModelOutput(raw)

	require.NoError(t, err)
	assert.Equal(t, "My Guide", doc.Title)
	assert.Equal(t, "Body.", doc.Content)
}

func TestParseModelOutputMarkdownFallback(t *testing.T) {
	raw := "# Sourdough Basics\n\nMix flour and water."

	doc, err := parseModelOutput(raw)

	require.NoError(t, err)
	assert.Equal(t, "Sourdough Basics", doc.Title)
	assert.Equal(t, raw, doc.Content)
}

func TestParseModelOutputMarkdownWithoutHeading(t *testing.T) {
	doc, err := parseModelOutput("Just a paragraph of text.")

	require.NoError(t, err)
	assert.Empty(t, doc.Title)
	assert.Equal(t, "Just a paragraph of text.", doc.Content)
}

func TestParseModelOutputEmpty(t *testing.T) {
	_, err := parseModelOutput("   \n  ")
	assert.Error(t, err)
}
