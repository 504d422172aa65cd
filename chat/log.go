package chat

import "strings"

// PromptSeparator joins turn contents when a Log is rendered to a single
// prompt string. It is part of the prompt contract: changing it changes
// what the provider sees.
const PromptSeparator = "\n\n"

// Log is an append-only, in-process record of the turns exchanged during one
// run. It is constructed by the caller and owned by one assistant instance;
// it never survives the process. Durable state lives in the memory store,
// not here.
//
// Log offers no way to remove or reorder entries: a render always observes
// every appended turn, in insertion order.
type Log struct {
	turns []Message
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn to the end of the log.
func (l *Log) Append(msg Message) {
	l.turns = append(l.turns, msg)
}

// Len reports the number of turns appended so far.
func (l *Log) Len() int {
	return len(l.turns)
}

// Turns returns a copy of the appended turns in insertion order. The copy
// keeps callers from mutating the log through the returned slice.
func (l *Log) Turns() []Message {
	out := make([]Message, len(l.turns))
	copy(out, l.turns)
	return out
}

// RenderPrompt joins the content of every appended turn with PromptSeparator,
// preserving insertion order. It has no side effects: two renders with no
// Append in between produce identical output.
func (l *Log) RenderPrompt() string {
	parts := make([]string, len(l.turns))
	for i, t := range l.turns {
		parts[i] = t.Content
	}
	return strings.Join(parts, PromptSeparator)
}
