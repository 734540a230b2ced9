// Package engine implements the dialogue transition function: given the
// current conversation state, accumulated data, message history and a new
// user message, it produces the reply, the next state and the next data.
//
// The engine is total — it cannot fail. Error-like conditions (invalid input,
// responder outages) resolve to state-preserving or state-resetting replies.
// Apart from the injected metrics sink and the external responder, evaluation
// is pure: the engine performs no I/O and never touches a live session, which
// keeps every transition independently unit-testable.
package engine
