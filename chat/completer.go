package chat

import "context"

// Completer abstracts a completion provider (Ollama, OpenAI, OpenRouter,
// Anthropic) behind a single blocking call.
//
// The interface lives in the chat package rather than the provider package so
// that provider implementations and the assistant can both depend on it
// without an import cycle.
type Completer interface {
	// Complete sends the ordered messages and returns the text of the first
	// candidate reply, trimmed of leading and trailing whitespace. It makes
	// exactly one outbound call: no retries, no caching. Cancelling ctx
	// aborts the network operation.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Model returns the model identifier used for API calls.
	Model() string

	// Ping checks that the provider is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}
