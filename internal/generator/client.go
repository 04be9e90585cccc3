package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/engvoca/backend/internal/config"
	"github.com/engvoca/backend/internal/ollama"
)

// TextGenerator is the interface every generation backend satisfies.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, p ollama.Params) (string, error)
}

// NewTextGenerator picks the backend from configuration: a local
// Ollama server (the default), the Anthropic API, or canned mock
// replies for development without either.
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	switch cfg.Generator.Backend {
	case "ollama", "":
		log.Println("Generator using Ollama:", cfg.Ollama.URL)
		return ollama.NewClient(cfg.Ollama.URL, cfg.Ollama.Timeout), nil
	case "anthropic":
		log.Println("Generator using Anthropic API:", cfg.Generator.AnthropicModel)
		return NewAnthropicClient(cfg.Generator.AnthropicModel), nil
	case "mock":
		log.Println("Generator using mock data")
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.Generator.Backend)
	}
}

// ── AnthropicClient — Anthropic SDK ────────────────────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Generate(ctx context.Context, prompt string, p ollama.Params) (string, error) {
	maxTokens := int64(p.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		Temperature: param.NewOpt(p.Temperature),
		TopP:        param.NewOpt(p.TopP),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

func (c *AnthropicClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// Generate answers every prompt with a fixed labelled vocabulary list.
// The shape matches what the prompts ask the real model for, so the
// whole parse and synthesis path runs against it.
func (m *MockClient) Generate(ctx context.Context, prompt string, p ollama.Params) (string, error) {
	return "단어: apple\n의미: 사과\n\n" +
		"단어: school\n의미: 학교\n\n" +
		"단어: friend\n의미: 친구\n\n" +
		"단어: study\n의미: 공부\n\n" +
		"단어: book\n의미: 책", nil
}
