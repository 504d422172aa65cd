// Package testutil provides hand-rolled test doubles for the provider layer.
package testutil

import (
	"context"

	"mnemo/chat"
)

// MockCompleter implements chat.Completer for testing.
type MockCompleter struct {
	// Configurable behaviour
	CompleteFunc   func(ctx context.Context, messages []chat.Message) (string, error)
	ListModelsFunc func(ctx context.Context) ([]string, error)
	PingFunc       func(ctx context.Context) error

	// State
	currentModel string

	// Calls records every message slice passed to Complete, in order.
	Calls [][]chat.Message
}

// NewMockCompleter creates a mock completer with default implementations.
func NewMockCompleter(modelName string) *MockCompleter {
	mock := &MockCompleter{
		currentModel: modelName,
	}
	mock.CompleteFunc = mock.defaultComplete
	mock.ListModelsFunc = mock.defaultListModels
	mock.PingFunc = mock.defaultPing
	return mock
}

func (m *MockCompleter) defaultComplete(ctx context.Context, messages []chat.Message) (string, error) {
	return "Mock response", nil
}

func (m *MockCompleter) defaultListModels(ctx context.Context) ([]string, error) {
	return []string{"mock-model-1", "mock-model-2"}, nil
}

func (m *MockCompleter) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	// Record a copy so later mutation by the caller cannot change history.
	turns := make([]chat.Message, len(messages))
	copy(turns, messages)
	m.Calls = append(m.Calls, turns)

	return m.CompleteFunc(ctx, messages)
}

func (m *MockCompleter) ListModels(ctx context.Context) ([]string, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockCompleter) Model() string {
	return m.currentModel
}

func (m *MockCompleter) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
