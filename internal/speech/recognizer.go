// Package speech abstracts the event-driven speech-to-text capability the
// conversation controller consumes. A recognition session delivers exactly
// one terminal outcome, an utterance or a failure, and always signals that
// listening ended.
package speech

import (
	"context"
	"errors"
)

// ErrUnavailable reports that no recognition capability is present.
var ErrUnavailable = errors.New("speech recognition unavailable")

// EventKind discriminates recognizer events.
type EventKind int

const (
	// EventUtterance carries the single recognized utterance.
	EventUtterance EventKind = iota
	// EventError carries a terminal recognition failure.
	EventError
	// EventEnded signals that the session stopped listening. It always
	// follows the terminal utterance or error, and is also emitted when a
	// session is stopped before producing either.
	EventEnded
)

// Event is one recognizer notification.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Recognizer is the injected speech-to-text capability. At most one
// recognition session is active at a time.
type Recognizer interface {
	// Start begins a recognition session. Starting while a session is
	// already active is a no-op. It returns ErrUnavailable when the
	// capability cannot be used at all.
	Start(ctx context.Context) error
	// Stop ends the active session, if any. The session still emits
	// EventEnded.
	Stop()
	// Events delivers recognizer notifications in order.
	Events() <-chan Event
}
