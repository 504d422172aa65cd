package provider

import "fmt"

// TransportError reports that a provider could not be reached or answered
// with a non-success status. It wraps the underlying SDK or network error.
type TransportError struct {
	Provider string // provider ID, e.g. "anthropic"
	Op       string // operation that failed, e.g. "complete"
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports that a provider answered successfully but
// the response body is missing the fields mnemo needs: no candidates, or a
// candidate with empty text content.
type MalformedResponseError struct {
	Provider string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Reason)
}

func transportErr(provider, op string, err error) error {
	return &TransportError{Provider: provider, Op: op, Err: err}
}

func malformedErr(provider, reason string) error {
	return &MalformedResponseError{Provider: provider, Reason: reason}
}
