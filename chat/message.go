// Package chat holds the provider-agnostic conversation types shared by the
// assistant, provider, and storage layers. Provider implementations import
// chat; chat imports none of them, which keeps the dependency graph acyclic.
package chat

import "time"

// Conversation roles as they appear on the wire. Providers translate these
// into their own message types; unknown roles are sent as user messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn of a conversation. A Message is immutable
// once appended to a Log.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// NewUserMessage returns a user turn stamped with the current time.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// NewAssistantMessage returns an assistant turn stamped with the current time.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: time.Now()}
}
