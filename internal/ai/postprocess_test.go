// internal/ai/postprocess_test.go
package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no fences",
			input:    "# Title\n\nBody text.",
			expected: "# Title\n\nBody text.",
		},
		{
			name:     "plain fence wrapper",
			input:    "```\n# Title\n\nBody text.\n```",
			expected: "# Title\n\nBody text.",
		},
		{
			name:     "markdown fence wrapper",
			input:    "```markdown\n# Title\n\nBody text.\n```",
			expected: "# Title\n\nBody text.",
		},
		{
			name:     "json fence wrapper",
			input:    "```json\n{\"title\": \"x\"}\n```",
			expected: "{\"title\": \"x\"}",
		},
		{
			name:     "inner fences preserved",
			input:    "```markdown\n# Title\n\n```go\nfmt.Println(\"hi\")\n```\n\nMore text.\n```",
			expected: "# Title\n\n```go\nfmt.Println(\"hi\")\n```\n\nMore text.",
		},
		{
			name:     "surrounding whitespace",
			input:    "\n\n  # Title  \n\n",
			expected: "# Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestNormalizeRequiresMarker(t *testing.T) {
	content := "# Title\n\nBody text."

	_, ok := Normalize(content, true)
	assert.False(t, ok, "content without marker should be rejected as truncated")

	cleaned, ok := Normalize(content+"\n"+CompletionMarker, true)
	assert.True(t, ok)
	assert.Equal(t, "# Title\n\nBody text.", cleaned)
	assert.NotContains(t, cleaned, CompletionMarker)
}

func TestNormalizeMarkerOptional(t *testing.T) {
	cleaned, ok := Normalize("# Title\n\nBody text.", false)
	assert.True(t, ok)
	assert.Equal(t, "# Title\n\nBody text.", cleaned)
}

func TestNormalizeStripsFenceAndMarker(t *testing.T) {
	raw := "```markdown\n# Title\n\nBody text.\n" + CompletionMarker + "\n```"

	cleaned, ok := Normalize(raw, true)
	assert.True(t, ok)
	assert.Equal(t, "# Title\n\nBody text.", cleaned)
}
