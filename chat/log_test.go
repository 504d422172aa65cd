package chat

import (
	"strings"
	"testing"
)

func TestLogRenderPromptPreservesOrder(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		expected string
	}{
		{
			name:     "empty log",
			contents: nil,
			expected: "",
		},
		{
			name:     "single turn",
			contents: []string{"Hello"},
			expected: "Hello",
		},
		{
			name:     "alternating turns",
			contents: []string{"Hello", "Hi there", "How are you?"},
			expected: "Hello\n\nHi there\n\nHow are you?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLog()
			for i, c := range tt.contents {
				if i%2 == 0 {
					log.Append(NewUserMessage(c))
				} else {
					log.Append(NewAssistantMessage(c))
				}
			}

			if got := log.RenderPrompt(); got != tt.expected {
				t.Errorf("RenderPrompt() = %q, want %q", got, tt.expected)
			}
			if log.Len() != len(tt.contents) {
				t.Errorf("Len() = %d, want %d", log.Len(), len(tt.contents))
			}
		})
	}
}

func TestLogRenderPromptContainsEachTurnOnce(t *testing.T) {
	log := NewLog()
	contents := []string{"alpha", "bravo", "charlie", "delta"}
	for _, c := range contents {
		log.Append(NewUserMessage(c))
	}

	rendered := log.RenderPrompt()
	for _, c := range contents {
		if n := strings.Count(rendered, c); n != 1 {
			t.Errorf("rendered prompt contains %q %d times, want 1", c, n)
		}
	}

	// Order must match insertion order.
	last := -1
	for _, c := range contents {
		idx := strings.Index(rendered, c)
		if idx <= last {
			t.Errorf("turn %q rendered out of order", c)
		}
		last = idx
	}
}

func TestLogRenderPromptIdempotent(t *testing.T) {
	log := NewLog()
	log.Append(NewUserMessage("first"))
	log.Append(NewAssistantMessage("second"))

	a := log.RenderPrompt()
	b := log.RenderPrompt()
	if a != b {
		t.Errorf("consecutive renders differ: %q vs %q", a, b)
	}

	log.Append(NewUserMessage("third"))
	c := log.RenderPrompt()
	if !strings.HasPrefix(c, a) {
		t.Errorf("render after append does not extend previous render: %q", c)
	}
}

func TestLogTurnsReturnsCopy(t *testing.T) {
	log := NewLog()
	log.Append(NewUserMessage("original"))

	turns := log.Turns()
	turns[0].Content = "mutated"

	if got := log.Turns()[0].Content; got != "original" {
		t.Errorf("log turn mutated through Turns() copy: %q", got)
	}
}
