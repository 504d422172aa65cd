package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mnemo/chat"
	"mnemo/provider/testutil"
	"mnemo/storage"
)

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

// scriptedCompleter answers each Complete call with the next scripted reply.
func scriptedCompleter(t *testing.T, replies ...string) *testutil.MockCompleter {
	t.Helper()
	mock := testutil.NewMockCompleter("test-model")
	call := 0
	mock.CompleteFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		if call >= len(replies) {
			t.Fatalf("unexpected completion call %d", call+1)
		}
		reply := replies[call]
		call++
		return reply, nil
	}
	return mock
}

func TestRunEmptyStoreHello(t *testing.T) {
	store := newFileStore(t)
	mock := scriptedCompleter(t, "Hi there", `{"greeted":true}`)
	a := New(mock, store, Options{})

	res, err := a.Run(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Reply != "Hi there" {
		t.Errorf("Reply = %q, want %q", res.Reply, "Hi there")
	}
	if !res.Persisted() {
		t.Fatalf("run did not persist: %v", res.DistillErr)
	}

	// The distillation call receives the candidate blob built from
	// {default memory, message, reply}.
	if len(mock.Calls) != 2 {
		t.Fatalf("completer called %d times, want 2", len(mock.Calls))
	}
	distillInput := mock.Calls[1]
	if distillInput[0].Role != chat.RoleSystem || distillInput[0].Content != DefaultDistillInstruction {
		t.Errorf("distill call missing instruction turn: %+v", distillInput[0])
	}
	wantBlob := `{"memory":"{}","lastUserMessage":"Hello","lastAssistantResponse":"Hi there"}`
	if distillInput[1].Content != wantBlob {
		t.Errorf("candidate blob = %q, want %q", distillInput[1].Content, wantBlob)
	}

	// The distilled result is on disk for the next invocation.
	stored, err := store.Load()
	if err != nil {
		t.Fatalf("Load after run: %v", err)
	}
	if stored != `{"greeted":true}` {
		t.Errorf("stored memory = %q", stored)
	}
}

func TestRunPromptEmbedsMemoryVerbatim(t *testing.T) {
	store := newFileStore(t)
	if err := store.Save(`{"name":"Felix"}`); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	mock := scriptedCompleter(t, "Your name is Felix", "{}")
	a := New(mock, store, Options{})

	if _, err := a.Run(context.Background(), "What's my name?"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	primary := mock.Calls[0]
	var prompt string
	for _, m := range primary {
		if m.Role == chat.RoleUser {
			prompt = m.Content
		}
	}
	if !strings.Contains(prompt, "Felix") {
		t.Errorf("prompt does not contain the stored memory: %q", prompt)
	}
	if !strings.Contains(prompt, "What's my name?") {
		t.Errorf("prompt does not contain the user message: %q", prompt)
	}
}

func TestRunPrimaryFailureLeavesMemoryUntouched(t *testing.T) {
	store := newFileStore(t)
	if err := store.Save(`{"name":"Felix"}`); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	mock := testutil.NewMockCompleter("test-model")
	mock.CompleteFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", errors.New("connection refused")
	}
	a := New(mock, store, Options{})

	res, err := a.Run(context.Background(), "Hello")
	if err == nil {
		t.Fatal("Run succeeded despite primary completion failure")
	}
	if res != nil {
		t.Errorf("Run returned a result on primary failure: %+v", res)
	}

	// Only the primary call happened; no distillation was attempted.
	if len(mock.Calls) != 1 {
		t.Errorf("completer called %d times, want 1", len(mock.Calls))
	}

	stored, loadErr := store.Load()
	if loadErr != nil {
		t.Fatalf("Load: %v", loadErr)
	}
	if stored != `{"name":"Felix"}` {
		t.Errorf("memory mutated on failed run: %q", stored)
	}
}

func TestRunDistillFailureKeepsReplyAndOldMemory(t *testing.T) {
	store := newFileStore(t)
	if err := store.Save(`{"name":"Felix"}`); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	mock := testutil.NewMockCompleter("test-model")
	call := 0
	mock.CompleteFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		call++
		if call == 1 {
			return "Your name is Felix", nil
		}
		return "", errors.New("rate limited")
	}
	a := New(mock, store, Options{})

	res, err := a.Run(context.Background(), "What's my name?")
	if err != nil {
		t.Fatalf("Run must succeed once the reply exists: %v", err)
	}
	if res.Reply != "Your name is Felix" {
		t.Errorf("Reply = %q", res.Reply)
	}
	if res.DistillErr == nil {
		t.Fatal("DistillErr is nil, want distillation failure")
	}
	if res.Persisted() {
		t.Error("Persisted() = true after distill failure")
	}
	if res.MemoryAfter != res.MemoryBefore {
		t.Errorf("MemoryAfter = %q, want unchanged %q", res.MemoryAfter, res.MemoryBefore)
	}

	stored, loadErr := store.Load()
	if loadErr != nil {
		t.Fatalf("Load: %v", loadErr)
	}
	if stored != `{"name":"Felix"}` {
		t.Errorf("on-disk memory changed after distill failure: %q", stored)
	}
}

func TestRunTidiesFencedDistilledOutput(t *testing.T) {
	store := newFileStore(t)
	mock := scriptedCompleter(t, "Hi there", "```json\n{\"greeted\": true}\n```")
	a := New(mock, store, Options{})

	res, err := a.Run(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Persisted() {
		t.Fatalf("run did not persist: %v", res.DistillErr)
	}

	stored, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored != `{"greeted": true}` {
		t.Errorf("stored memory = %q, want fence stripped", stored)
	}
}

func TestRunAppendsBothTurnsToLog(t *testing.T) {
	store := newFileStore(t)
	mock := scriptedCompleter(t, "Hi there", "{}")
	a := New(mock, store, Options{})

	if _, err := a.Run(context.Background(), "Hello"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	turns := a.Log().Turns()
	if len(turns) != 2 {
		t.Fatalf("log has %d turns, want 2", len(turns))
	}
	if turns[0].Role != chat.RoleUser || turns[0].Content != "Hello" {
		t.Errorf("first turn = %+v", turns[0])
	}
	if turns[1].Role != chat.RoleAssistant || turns[1].Content != "Hi there" {
		t.Errorf("second turn = %+v", turns[1])
	}
}

func TestRunLogStaysEmptyOnPrimaryFailure(t *testing.T) {
	store := newFileStore(t)
	mock := testutil.NewMockCompleter("test-model")
	mock.CompleteFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", errors.New("boom")
	}
	a := New(mock, store, Options{})

	a.Run(context.Background(), "Hello")
	if a.Log().Len() != 0 {
		t.Errorf("log has %d turns after failed run, want 0", a.Log().Len())
	}
}

func TestRunCancelledContextLeavesMemoryUntouched(t *testing.T) {
	store := newFileStore(t)
	if err := store.Save(`{"k":"v"}`); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	mock := testutil.NewMockCompleter("test-model")
	mock.CompleteFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", ctx.Err()
	}
	a := New(mock, store, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Run(ctx, "Hello"); err == nil {
		t.Fatal("Run succeeded with a cancelled context")
	}
	stored, _ := store.Load()
	if stored != `{"k":"v"}` {
		t.Errorf("memory mutated after cancellation: %q", stored)
	}
}
