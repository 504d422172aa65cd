package provider

import (
	"mnemo/chat"

	"github.com/ollama/ollama/api"
	openai "github.com/openai/openai-go/v3"
)

// ConvertToOllamaMessages converts chat.Message to Ollama api.Message.
//
// The Timestamp field is not preserved: the Ollama API has no notion of it.
// Timestamps are managed at the chat layer, not the provider layer.
func ConvertToOllamaMessages(messages []chat.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// ConvertToOpenAIMessages converts chat.Message to OpenAI format. OpenRouter
// uses the same wire format, so both backends share this conversion.
func ConvertToOpenAIMessages(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case chat.RoleUser:
			result[i] = openai.UserMessage(msg.Content)
		case chat.RoleAssistant:
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			// Unknown roles are sent as user messages
			result[i] = openai.UserMessage(msg.Content)
		}
	}

	return result
}
