package provider

import (
	"context"
	"fmt"
	"strings"

	"mnemo/chat"
	"mnemo/ollama"
)

// OllamaCompleter wraps the ollama.Client to implement chat.Completer.
//
// This completer handles the conversion from chat.Message to Ollama's
// api.Message; everything else is delegated to the thin client in the
// ollama package.
type OllamaCompleter struct {
	client *ollama.Client
}

// NewOllamaCompleter creates a new Ollama completer.
//
// Parameters:
//   - baseURL: The Ollama server URL (default: "http://localhost:11434")
//   - model: The model name (default: "llama3.1:latest")
//
// Returns an error if the baseURL is invalid.
func NewOllamaCompleter(baseURL, model string) (*OllamaCompleter, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaCompleter{client: client}, nil
}

// Complete implements chat.Completer.Complete.
func (p *OllamaCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	reply, err := p.client.Chat(ctx, ConvertToOllamaMessages(messages))
	if err != nil {
		return "", transportErr("ollama", "complete", err)
	}

	out := strings.TrimSpace(reply)
	if out == "" {
		return "", malformedErr("ollama", "response contains no message content")
	}
	return out, nil
}

// ListModels returns the models installed on the Ollama server.
func (p *OllamaCompleter) ListModels(ctx context.Context) ([]string, error) {
	infos, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, transportErr("ollama", "list models", err)
	}

	result := make([]string, 0, len(infos))
	for _, info := range infos {
		result = append(result, info.Name)
	}
	return result, nil
}

// Model implements chat.Completer.Model.
func (p *OllamaCompleter) Model() string {
	return p.client.Model()
}

// Ping implements chat.Completer.Ping.
func (p *OllamaCompleter) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return transportErr("ollama", "ping", err)
	}
	return nil
}
