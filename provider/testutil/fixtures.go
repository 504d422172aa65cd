package testutil

import (
	"time"

	"mnemo/chat"
)

// TestMessages returns a sample conversation for testing
func TestMessages() []chat.Message {
	return []chat.Message{
		{
			Role:      chat.RoleUser,
			Content:   "Hello, how are you?",
			Timestamp: time.Now(),
		},
		{
			Role:      chat.RoleAssistant,
			Content:   "I'm doing well, thank you!",
			Timestamp: time.Now(),
		},
		{
			Role:      chat.RoleUser,
			Content:   "Can you help me with a task?",
			Timestamp: time.Now(),
		},
	}
}
