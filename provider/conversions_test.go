package provider

import (
	"testing"
	"time"

	"mnemo/chat"
	"mnemo/provider/testutil"

	"github.com/ollama/ollama/api"
)

func TestConvertToOllamaMessages(t *testing.T) {
	tests := []struct {
		name     string
		input    []chat.Message
		expected []api.Message
	}{
		{
			name:     "empty slice",
			input:    []chat.Message{},
			expected: []api.Message{},
		},
		{
			name: "single message",
			input: []chat.Message{
				{Role: "user", Content: "Hello"},
			},
			expected: []api.Message{
				{Role: "user", Content: "Hello"},
			},
		},
		{
			name: "multiple messages",
			input: []chat.Message{
				{Role: "user", Content: "Hello", Timestamp: time.Now()},
				{Role: "assistant", Content: "Hi there", Timestamp: time.Now()},
				{Role: "user", Content: "How are you?", Timestamp: time.Now()},
			},
			expected: []api.Message{
				{Role: "user", Content: "Hello"},
				{Role: "assistant", Content: "Hi there"},
				{Role: "user", Content: "How are you?"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertToOllamaMessages(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.expected))
			}

			for i, msg := range result {
				if msg.Role != tt.expected[i].Role {
					t.Errorf("message %d role: got %q, want %q", i, msg.Role, tt.expected[i].Role)
				}
				if msg.Content != tt.expected[i].Content {
					t.Errorf("message %d content: got %q, want %q", i, msg.Content, tt.expected[i].Content)
				}
			}
		})
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	input := []chat.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi"},
		{Role: "weird", Content: "fallback"},
	}

	result := ConvertToOpenAIMessages(input)
	if len(result) != len(input) {
		t.Fatalf("length mismatch: got %d, want %d", len(result), len(input))
	}

	if result[0].OfSystem == nil {
		t.Error("system message not converted to system param")
	}
	if result[1].OfUser == nil {
		t.Error("user message not converted to user param")
	}
	if result[2].OfAssistant == nil {
		t.Error("assistant message not converted to assistant param")
	}
	if result[3].OfUser == nil {
		t.Error("unknown role not defaulted to user param")
	}
}

func TestConvertFixtureConversation(t *testing.T) {
	input := testutil.TestMessages()

	result := ConvertToOllamaMessages(input)
	if len(result) != len(input) {
		t.Fatalf("length mismatch: got %d, want %d", len(result), len(input))
	}
	for i, msg := range result {
		if msg.Role != input[i].Role {
			t.Errorf("message %d role: got %q, want %q", i, msg.Role, input[i].Role)
		}
	}
}

func TestConvertToAnthropicMessagesSplitsSystem(t *testing.T) {
	input := []chat.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi"},
	}

	msgs, system := convertToAnthropicMessages(input)

	if len(system) != 1 || system[0].Text != "be brief" {
		t.Errorf("system blocks = %+v, want one block with %q", system, "be brief")
	}
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2 (system excluded)", len(msgs))
	}
}
