// internal/ai/postprocess.go
package ai

import (
	"regexp"
	"strings"
)

var fencedBlockRe = regexp.MustCompile("(?s)^```(?:markdown|md|json)?\\s*(.*?)\\s*```$")

// StripFences removes a fenced code-block wrapper the model may have added
// around the whole body, so stored content is always raw Markdown.
func StripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if match := fencedBlockRe.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[1])
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// Normalize validates and cleans raw model content. When requireMarker is
// set, content missing the completion marker is rejected as truncated
// (ok=false). The marker and any surrounding code fence are stripped from the
// returned content.
func Normalize(content string, requireMarker bool) (string, bool) {
	if requireMarker && !strings.Contains(content, CompletionMarker) {
		return "", false
	}

	cleaned := strings.ReplaceAll(content, CompletionMarker, "")
	cleaned = StripFences(strings.TrimSpace(cleaned))
	return strings.TrimSpace(cleaned), true
}
