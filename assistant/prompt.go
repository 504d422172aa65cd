package assistant

import "fmt"

// Prompt construction is plain text with labeled sections, and the section
// labels are part of the contract: what the provider receives is exactly
// these templates with the memory and message substituted verbatim. They are
// inspectable strings, overridable via config, with no hidden prompt
// assembly.

const (
	memorySectionLabel  = "## Current memory"
	messageSectionLabel = "## Message"
)

// DefaultSystemPrompt frames the exchange for the model.
const DefaultSystemPrompt = "You are a helpful personal assistant. " +
	"The user's message comes with a distilled memory of your previous conversations; " +
	"use it for context and answer only the message."

// DefaultDistillInstruction is the distillation prompt. It asks for nothing
// but the compressed state so the answer can be persisted as-is.
const DefaultDistillInstruction = "Extract and compress the conversational state " +
	"from this blob into minimal structured form. " +
	"Answer only with the compressed form, no explanation."

// Prompts bundles the configurable prompt strings for one assistant.
type Prompts struct {
	System             string
	DistillInstruction string
}

// DefaultPrompts returns the stock prompt set.
func DefaultPrompts() Prompts {
	return Prompts{
		System:             DefaultSystemPrompt,
		DistillInstruction: DefaultDistillInstruction,
	}
}

// withDefaults fills empty fields so a partially configured Prompts still
// produces a working assistant.
func (p Prompts) withDefaults() Prompts {
	if p.System == "" {
		p.System = DefaultSystemPrompt
	}
	if p.DistillInstruction == "" {
		p.DistillInstruction = DefaultDistillInstruction
	}
	return p
}

// BuildExchangePrompt embeds the current memory and the new user message
// verbatim under labeled sections.
func BuildExchangePrompt(memory, userMessage string) string {
	return fmt.Sprintf("%s\n%s\n\n%s\n%s",
		memorySectionLabel, memory,
		messageSectionLabel, userMessage,
	)
}
