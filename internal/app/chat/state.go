/*
Package chat contains the core logic for session lifecycle, the concurrent
session registry, and message routing between connected clients.

This file defines the session lifecycle states.
*/
package chat

// State is the lifecycle state of a client session.
type State int32

const (
	// StateConnecting means the connection is accepted but no I/O has happened yet.
	StateConnecting State = iota

	// StateNaming means the session is inside the naming handshake loop.
	StateNaming

	// StateActive means the session is registered and its lines are being routed.
	StateActive

	// StateClosing means teardown has started: closing notice, connection close, unregister.
	StateClosing

	// StateClosed is terminal; no further operations are valid on the session.
	StateClosed
)

// String returns the human-readable state name used in logs.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateNaming:
		return "naming"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
