package provider

import (
	"context"
	"fmt"
	"strings"

	"mnemo/chat"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAICompleter implements chat.Completer using OpenAI's chat completions API.
type OpenAICompleter struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAICompleter creates a new OpenAI completer.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: Model to use (default: "gpt-4o-mini")
//
// Returns an error if the API key is missing.
func NewOpenAICompleter(baseURL, apiKey, model string) (*OpenAICompleter, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini" // Default to affordable model
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAICompleter{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Complete implements chat.Completer.Complete with a single blocking request.
func (p *OpenAICompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(messages),
		Model:    openai.ChatModel(p.model),
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", transportErr("openai", "complete", err)
	}

	return firstChoiceText("openai", completion)
}

// ListModels fetches the available models from OpenAI.
func (p *OpenAICompleter) ListModels(ctx context.Context) ([]string, error) {
	modelsPage, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, transportErr("openai", "list models", err)
	}

	result := make([]string, 0, len(modelsPage.Data))
	for _, m := range modelsPage.Data {
		result = append(result, m.ID)
	}
	return result, nil
}

// Model implements chat.Completer.Model.
func (p *OpenAICompleter) Model() string {
	return p.model
}

// Ping implements chat.Completer.Ping by attempting to list models.
func (p *OpenAICompleter) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return transportErr("openai", "ping", err)
	}
	return nil
}

// firstChoiceText extracts the first candidate's text from a chat completion,
// trimmed of surrounding whitespace. Shared by the OpenAI and OpenRouter
// backends.
func firstChoiceText(providerID string, completion *openai.ChatCompletion) (string, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return "", malformedErr(providerID, "response has no choices")
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", malformedErr(providerID, "first choice has empty content")
	}
	return reply, nil
}
