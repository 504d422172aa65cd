package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// Client wraps the Ollama API client for single-shot chat completions.
type Client struct {
	client  *api.Client
	model   string
	baseURL string
}

func NewClient(baseURL, model string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	client := api.NewClient(parsedURL, http.DefaultClient)

	return &Client{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends a non-streaming chat request and returns the complete reply
// content. The Ollama API may still deliver the response in pieces, so the
// response func accumulates every chunk before returning.
func (c *Client) Chat(ctx context.Context, messages []api.Message) (string, error) {
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   func(b bool) *bool { return &b }(false),
	}

	var reply strings.Builder
	respFunc := func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return "", err
	}

	return reply.String(), nil
}

// ModelInfo describes one model installed on the server.
type ModelInfo struct {
	Name string
	Size int64
}

func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]ModelInfo, len(resp.Models))
	for i, model := range resp.Models {
		models[i] = ModelInfo{
			Name: model.Name,
			Size: model.Size,
		}
	}

	return models, nil
}

// Ping checks that the Ollama server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.client.List(ctx); err != nil {
		return fmt.Errorf("Ollama server unreachable at %s: %w", c.baseURL, err)
	}
	return nil
}

func (c *Client) Model() string {
	return c.model
}
