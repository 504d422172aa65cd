package provider

import (
	"context"
	"fmt"
	"strings"

	"mnemo/chat"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicCompleter implements chat.Completer using Anthropic's official API.
type AnthropicCompleter struct {
	client  *anthropic.Client
	model   anthropic.Model
	baseURL string
}

// NewAnthropicCompleter creates a new Anthropic completer.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Model to use (default: "claude-sonnet-4-5-20250929")
//
// Returns an error if the API key is missing.
func NewAnthropicCompleter(baseURL, apiKey, model string) (*AnthropicCompleter, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	var anthropicModel anthropic.Model
	if model == "" {
		anthropicModel = anthropic.ModelClaudeSonnet4_5_20250929
	} else {
		anthropicModel = anthropic.Model(model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicCompleter{
		client:  &client, // Convert value to pointer
		model:   anthropicModel,
		baseURL: baseURL,
	}, nil
}

// Complete implements chat.Completer.Complete with a single blocking request.
func (p *AnthropicCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	anthropicMessages, systemPrompt := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  anthropicMessages,
		MaxTokens: 4096, // Required by Anthropic API
	}
	if len(systemPrompt) > 0 {
		params.System = systemPrompt
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", transportErr("anthropic", "complete", err)
	}

	if len(msg.Content) == 0 {
		return "", malformedErr("anthropic", "response has no content blocks")
	}

	// Collect text blocks; the first candidate's text is the reply.
	var reply strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(text.Text)
		}
	}

	out := strings.TrimSpace(reply.String())
	if out == "" {
		return "", malformedErr("anthropic", "response contains no text content")
	}
	return out, nil
}

// ListModels returns a curated list of known Claude models; Anthropic has no
// models list API.
func (p *AnthropicCompleter) ListModels(ctx context.Context) ([]string, error) {
	models := []anthropic.Model{
		anthropic.ModelClaudeSonnet4_5_20250929,
		anthropic.ModelClaude3_5Haiku20241022,
		anthropic.ModelClaude_3_Opus_20240229,
		anthropic.ModelClaude_3_Haiku_20240307,
	}

	result := make([]string, 0, len(models))
	for _, m := range models {
		result = append(result, string(m))
	}
	return result, nil
}

// Model implements chat.Completer.Model.
func (p *AnthropicCompleter) Model() string {
	return string(p.model)
}

// Ping implements chat.Completer.Ping by making a minimal request; Anthropic
// has no health endpoint.
func (p *AnthropicCompleter) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})

	if err != nil {
		return transportErr("anthropic", "ping", err)
	}
	return nil
}

// convertToAnthropicMessages converts chat messages to Anthropic format.
// Returns the message array and any system prompt found; Anthropic takes the
// system prompt as a separate parameter, not in the messages array.
func convertToAnthropicMessages(messages []chat.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	anthropicMsgs := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text: msg.Content,
			})

		case chat.RoleUser:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)),
			)

		case chat.RoleAssistant:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)),
			)

		default:
			// Unknown roles are sent as user messages
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)),
			)
		}
	}

	return anthropicMsgs, systemBlocks
}
