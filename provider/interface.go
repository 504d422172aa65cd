// Package provider implements the chat.Completer interface for the supported
// LLM backends.
//
// mnemo talks to multiple completion providers (Ollama, OpenRouter, OpenAI,
// Anthropic) through the chat.Completer contract. This keeps the assistant
// and CLI provider-agnostic: adding a backend means implementing the
// interface and registering it in the factory, nothing else changes.
//
// # Type Conversions
//
// The provider layer owns all conversions between mnemo's chat.Message and
// the provider SDK types. See conversions.go:
//   - ConvertToOllamaMessages
//   - ConvertToOpenAIMessages
//   - convertToAnthropicMessages (anthropic.go)
//
// # Failure Taxonomy
//
// Every backend reports failures through two unwrappable error types:
//   - *TransportError: the provider could not be reached, or answered with a
//     non-success status. Wraps the underlying SDK error.
//   - *MalformedResponseError: the provider answered, but the response is
//     missing the expected fields (no candidates, empty reply text).
//
// Callers decide whether a failure is fatal; this layer never retries.
//
// # Usage
//
//	p, err := provider.New(provider.Config{
//	    Type:    provider.TypeOllama,
//	    BaseURL: "http://localhost:11434",
//	    Model:   "llama3.1",
//	})
//	if err != nil {
//	    // handle error
//	}
//	reply, err := p.Complete(ctx, messages)
package provider

import "context"

// ModelLister is implemented by every bundled completer; it enumerates the
// models a provider offers. It is separate from chat.Completer because the
// assistant core never needs it; only the CLI's models command does.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Type identifies the provider implementation.
type Type string

const (
	TypeOllama     Type = "ollama"
	TypeOpenRouter Type = "openrouter"
	TypeOpenAI     Type = "openai"
	TypeAnthropic  Type = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    Type
	BaseURL string
	Model   string
	APIKey  string // For OpenRouter/OpenAI/Anthropic (unused for Ollama)
}
