package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the slice of the go-openai client the provider layer
// uses. Tests substitute a fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompleterFactory builds a ChatCompleter for one backend configuration.
type CompleterFactory func(cfg Config) ChatCompleter

// Client performs the chat-completion exchange with a backend. The wire
// payload is identical for every supported backend; only base URL and
// bearer token differ, so a single go-openai client per config suffices.
type Client struct {
	newCompleter CompleterFactory
}

// NewClient creates a client using real go-openai transports.
func NewClient() *Client {
	return &Client{newCompleter: openAICompleter}
}

// NewClientWithCompleter creates a client with a custom completer factory.
// Useful for testing.
func NewClientWithCompleter(factory CompleterFactory) *Client {
	return &Client{newCompleter: factory}
}

func openAICompleter(cfg Config) ChatCompleter {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	cc.HTTPClient = &http.Client{Timeout: cfg.Timeout()}
	return openai.NewClientWithConfig(cc)
}

// Complete sends messages to the backend described by cfg and returns the
// first completion's content. Transport faults come back as ErrCallFailed;
// a transport success with an unusable payload (no choices, blank content)
// is ErrInvalidResponse, never silently accepted as an empty answer.
func (c *Client) Complete(ctx context.Context, cfg Config, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       cfg.Model,
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
		Messages:    make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := c.newCompleter(cfg).CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCallFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrInvalidResponse)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: blank completion content", ErrInvalidResponse)
	}
	return content, nil
}
