// Package storage handles mnemo's durable state: the distilled memory blob
// that crosses process boundaries, and the exchange archive.
package storage

import "fmt"

// DefaultMemory is the well-defined empty memory value. It is a syntactically
// valid placeholder so prompt embedding never sees a null or malformed blob.
// A fresh store, and a store whose content turned out to be unusable, both
// load as DefaultMemory.
const DefaultMemory = "{}"

// MemoryStore persists exactly one opaque memory blob, last-write-wins.
//
// Load never fails on a fresh store: the absence of prior state is the
// expected first-run condition, not an error. Readable-but-unusable content
// is recovered locally by substituting DefaultMemory; a broken memory must
// not block the assistant from answering. Only an unreachable or unwritable
// medium surfaces as an *UnavailableError.
//
// Save is atomic from the caller's perspective: a concurrent or subsequent
// Load observes either the previous complete blob or the new complete blob,
// never a torn write. A saved blob round-trips bit-for-bit.
type MemoryStore interface {
	Load() (string, error)
	Save(blob string) error

	// Update runs load → mutate → save as one critical section, so two
	// overlapping update cycles cannot lose a write if the process ever
	// serves more than one request.
	Update(fn func(old string) (string, error)) error

	// Location describes where the blob lives, for diagnostics and the
	// memory path command.
	Location() string
}

// UnavailableError reports that the storage medium itself is unreadable or
// unwritable. On load this aborts the run; on save the caller has already
// delivered the reply and only reports it.
type UnavailableError struct {
	Path string
	Op   string // "load" or "save"
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("memory store %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// usable reports whether stored content can serve as a memory blob. Content
// that fails this check is treated as corrupt and replaced by DefaultMemory
// on load. The blob is deliberately opaque, so the bar is low: it must be
// non-empty after trimming. Structure is the provider's business, not ours.
func usable(blob string) bool {
	for _, r := range blob {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
