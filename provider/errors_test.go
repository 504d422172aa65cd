package provider

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := transportErr("ollama", "complete", cause)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatal("errors.As failed to match *TransportError")
	}
	if te.Provider != "ollama" || te.Op != "complete" {
		t.Errorf("unexpected fields: provider=%q op=%q", te.Provider, te.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("message does not mention cause: %q", err.Error())
	}
}

func TestTransportErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("primary completion: %w", transportErr("openai", "complete", errors.New("502")))

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatal("errors.As failed through an outer wrap")
	}
}

func TestMalformedResponseError(t *testing.T) {
	err := malformedErr("anthropic", "response has no content blocks")

	var me *MalformedResponseError
	if !errors.As(err, &me) {
		t.Fatal("errors.As failed to match *MalformedResponseError")
	}
	if me.Provider != "anthropic" {
		t.Errorf("provider = %q, want %q", me.Provider, "anthropic")
	}

	// The two kinds must stay distinct: callers branch on them.
	var te *TransportError
	if errors.As(err, &te) {
		t.Error("malformed response error matched *TransportError")
	}
}
