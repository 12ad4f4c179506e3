// internal/ai/generator.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/elevendocs/elevendocs-backend/internal/config"
)

// Document is the structured output of a generation call. Content is the raw
// model output for the body: the completion marker and any code fences are
// still present and must be normalized before storage.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Generator produces a document from a natural-language prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Document, error)
}

// OpenAIGenerator calls an OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
}

func NewOpenAIGenerator(cfg config.AIConfig) *OpenAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIGenerator{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (*Document, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("completion returned no choices")
	}

	return parseModelOutput(completion.Choices[0].Message.Content)
}

// parseModelOutput decodes the model's reply into a Document. The system
// prompt asks for a JSON object, but models occasionally wrap it in a code
// fence or fall back to plain Markdown; both shapes are accepted.
func parseModelOutput(raw string) (*Document, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("completion returned empty output")
	}

	candidate := StripFences(trimmed)

	var doc Document
	if err := json.Unmarshal([]byte(candidate), &doc); err == nil && doc.Content != "" {
		return &doc, nil
	}

	// Plain Markdown fallback: take the first heading as the title.
	doc = Document{Content: trimmed}
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(line, "#") {
			doc.Title = strings.TrimSpace(strings.TrimLeft(line, "# "))
			break
		}
	}
	return &doc, nil
}
