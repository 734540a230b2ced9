// Package core provides the foundational domain types and interfaces used by
// leadbot. It defines the core abstractions for:
//
//   - Sessions (stateful conversational containers with message history)
//   - ConversationState (the closed set of dialogue states)
//   - SessionData (the lead information accumulated over one conversation)
//   - Pluggable contracts for session storage and metrics sinks
//
// The package intentionally keeps implementation concerns (persistence,
// dialogue evaluation, transport) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core
