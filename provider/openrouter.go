package provider

import (
	"context"
	"fmt"

	"mnemo/chat"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenRouterCompleter implements chat.Completer using OpenRouter's
// OpenAI-compatible API.
type OpenRouterCompleter struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterCompleter creates a new OpenRouter completer.
//
// Parameters:
//   - baseURL: OpenRouter API base URL (default: "https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key (required)
//   - model: Model to use with vendor prefix (default: "meta-llama/llama-3.2-90b-instruct")
//
// Returns an error if the API key is missing.
func NewOpenRouterCompleter(baseURL, apiKey, model string) (*OpenRouterCompleter, error) {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if model == "" {
		model = "meta-llama/llama-3.2-90b-instruct"
	}

	// OpenRouter speaks the OpenAI wire format, so reuse the OpenAI client
	// with a custom base URL.
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenRouterCompleter{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Complete implements chat.Completer.Complete with a single blocking request.
func (p *OpenRouterCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(messages),
		Model:    openai.ChatModel(p.model),
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", transportErr("openrouter", "complete", err)
	}

	return firstChoiceText("openrouter", completion)
}

// ListModels fetches the available models from OpenRouter. IDs keep their
// vendor prefix ("meta-llama/...") because that is the form API calls need.
func (p *OpenRouterCompleter) ListModels(ctx context.Context) ([]string, error) {
	modelsPage, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, transportErr("openrouter", "list models", err)
	}

	result := make([]string, 0, len(modelsPage.Data))
	for _, m := range modelsPage.Data {
		result = append(result, m.ID)
	}
	return result, nil
}

// Model implements chat.Completer.Model.
// Returns the full model name with vendor prefix for API calls.
func (p *OpenRouterCompleter) Model() string {
	return p.model
}

// Ping implements chat.Completer.Ping by attempting to list models.
func (p *OpenRouterCompleter) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return transportErr("openrouter", "ping", err)
	}
	return nil
}
