// Package assistant sequences one exchange cycle: load memory, build the
// prompt, get the reply, distill the new state, persist it.
package assistant

import (
	"context"
	"fmt"
	"time"

	"mnemo/chat"
	"mnemo/storage"
)

// Options configures an Assistant beyond its two collaborators.
type Options struct {
	// Prompts overrides the stock prompt strings; empty fields keep their
	// defaults.
	Prompts Prompts

	// Timeout bounds each outbound completion call. Zero means no deadline
	// beyond what the caller's context carries.
	Timeout time.Duration
}

// Assistant runs exchange cycles against one completer and one memory store.
// It owns its turn log: the log is created with the assistant and dies with
// it, so state never leaks between instances.
type Assistant struct {
	completer chat.Completer
	store     storage.MemoryStore
	log       *chat.Log
	prompts   Prompts
	timeout   time.Duration
}

// New creates an assistant with a fresh, empty turn log.
func New(completer chat.Completer, store storage.MemoryStore, opts Options) *Assistant {
	return &Assistant{
		completer: completer,
		store:     store,
		log:       chat.NewLog(),
		prompts:   opts.Prompts.withDefaults(),
		timeout:   opts.Timeout,
	}
}

// Log exposes the assistant's turn log for inspection and archiving.
func (a *Assistant) Log() *chat.Log {
	return a.log
}

// Result reports one completed run. Reply is always set when Run returns
// without error; DistillErr carries a distillation or persistence failure
// that did not stop the reply from being delivered.
type Result struct {
	Reply        string
	MemoryBefore string
	MemoryAfter  string // equals MemoryBefore when distillation failed

	// DistillErr is non-nil when the distillation call or the save failed.
	// The on-disk memory is then exactly what it was before the run.
	DistillErr error
}

// Persisted reports whether the run ended with a new memory on disk.
func (r *Result) Persisted() bool {
	return r.DistillErr == nil
}

// Run performs one full exchange: memory load, primary completion,
// distillation, save.
//
// A failure before the reply exists (memory unavailable, primary completion
// failed) returns a nil Result and an error; the stored memory is untouched
// and nothing should be shown to the user. After the reply exists, failures
// are confined to Result.DistillErr and Run returns nil: the reply stands
// and the previous memory stays on disk.
func (a *Assistant) Run(ctx context.Context, userMessage string) (*Result, error) {
	memory, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load memory: %w", err)
	}

	prompt := BuildExchangePrompt(memory, userMessage)
	messages := []chat.Message{
		{Role: chat.RoleSystem, Content: a.prompts.System},
		chat.NewUserMessage(prompt),
	}

	reply, err := a.complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("primary completion: %w", err)
	}

	// The reply exists: from here on the run succeeds no matter what.
	a.log.Append(chat.NewUserMessage(userMessage))
	a.log.Append(chat.NewAssistantMessage(reply))

	res := &Result{
		Reply:        reply,
		MemoryBefore: memory,
		MemoryAfter:  memory,
	}

	blob, err := BuildCandidateBlob(memory, userMessage, reply)
	if err != nil {
		res.DistillErr = fmt.Errorf("build candidate blob: %w", err)
		return res, nil
	}

	distilled, err := a.complete(ctx, []chat.Message{
		{Role: chat.RoleSystem, Content: a.prompts.DistillInstruction},
		chat.NewUserMessage(blob),
	})
	if err != nil {
		res.DistillErr = fmt.Errorf("distillation: %w", err)
		return res, nil
	}
	distilled = TidyDistilled(distilled)

	if err := a.store.Save(distilled); err != nil {
		res.DistillErr = fmt.Errorf("persist memory: %w", err)
		return res, nil
	}

	res.MemoryAfter = distilled
	return res, nil
}

// complete makes one bounded completion call.
func (a *Assistant) complete(ctx context.Context, messages []chat.Message) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.completer.Complete(ctx, messages)
}
