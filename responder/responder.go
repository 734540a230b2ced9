// Package responder defines the escape hatch the dialogue engine uses for
// messages it cannot classify: an external free-form completion service.
// The interface is the engine's only source of non-determinism, so concrete
// backends live in sub-packages (openai, anthropic) and tests use Mock.
//
// Calls are best effort and fail soft: any error resolves to a localized
// fallback reply upstream, never to a failed turn.
package responder

import (
	"context"
	"errors"

	"github.com/agencyos/leadbot/core"
)

// SystemPreamble is the fixed instruction prepended to every completion
// request.
const SystemPreamble = "You are a friendly assistant for a web development agency. " +
	"Answer briefly and helpfully. If the user seems interested in a website, " +
	"suggest starting a project inquiry."

// ContextWindow bounds how much conversation history is forwarded to the
// external service.
const ContextWindow = 10

// ErrUnavailable signals that the responder could not produce a reply. The
// caller falls back to a canned localized answer.
var ErrUnavailable = errors.New("responder unavailable")

// Responder produces a free-form reply from recent conversation history.
type Responder interface {
	// Complete returns a reply string, or an error when the backend is
	// unreachable, over budget or returned an unusable payload.
	Complete(ctx context.Context, history []core.Message) (string, error)
}

// TrimHistory returns the last ContextWindow entries of history.
func TrimHistory(history []core.Message) []core.Message {
	if len(history) <= ContextWindow {
		return history
	}
	return history[len(history)-ContextWindow:]
}

// Mock is a deterministic in-memory Responder for tests and examples. It
// matches on the content of the most recent user message.
type Mock struct {
	responses map[string]string
	err       error
	calls     int
}

// NewMock constructs an empty Mock.
func NewMock() *Mock {
	return &Mock{responses: make(map[string]string)}
}

// AddResponse registers a canned completion for an input message.
func (m *Mock) AddResponse(input, reply string) { m.responses[input] = reply }

// Fail makes every subsequent Complete call return err.
func (m *Mock) Fail(err error) { m.err = err }

// Calls reports how many times Complete was invoked.
func (m *Mock) Calls() int { return m.calls }

// Complete implements Responder.
func (m *Mock) Complete(_ context.Context, history []core.Message) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(history) == 0 {
		return "", ErrUnavailable
	}
	last := history[len(history)-1]
	if reply, ok := m.responses[last.Content]; ok {
		return reply, nil
	}
	return "Mock reply to: " + last.Content, nil
}
