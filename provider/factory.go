package provider

import (
	"fmt"

	"mnemo/chat"
)

// New creates a completer based on configuration.
//
// This is the centralized factory for every provider type. It dispatches on
// Config.Type to the matching constructor.
//
// Returns an error if:
//   - The provider type is unknown
//   - The provider-specific constructor fails (e.g. missing API key)
func New(cfg Config) (chat.Completer, error) {
	switch cfg.Type {
	case TypeOllama:
		return NewOllamaCompleter(cfg.BaseURL, cfg.Model)
	case TypeOpenRouter:
		return NewOpenRouterCompleter(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeOpenAI:
		return NewOpenAICompleter(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case TypeAnthropic:
		return NewAnthropicCompleter(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a factory Type.
//
// For unknown IDs, returns the ID cast as Type (the factory will error).
func MapProviderIDToType(id string) Type {
	switch id {
	case "ollama":
		return TypeOllama
	case "openrouter":
		return TypeOpenRouter
	case "openai":
		return TypeOpenAI
	case "anthropic":
		return TypeAnthropic
	default:
		return Type(id)
	}
}
