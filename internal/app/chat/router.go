/*
Package chat contains the core logic for session lifecycle, the concurrent
session registry, and message routing between connected clients.

This file defines the Router, the stateless layer that classifies one input
line from an active session as an exit request, a whisper, or a broadcast,
and dispatches it through the registry and the journal.
*/
package chat

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shadoomedia/chat-server/internal/app/journal"
	"github.com/shadoomedia/chat-server/internal/pkg/colorx"
	"github.com/shadoomedia/chat-server/internal/pkg/errs"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

// ExitToken is the literal line a client sends for a graceful disconnect.
const ExitToken = "/exit"

// Action tells the session's read loop how to proceed after a dispatch.
type Action int

const (
	// ActionContinue keeps the session in its Active read loop.
	ActionContinue Action = iota

	// ActionDisconnect transitions the session to Closing.
	ActionDisconnect
)

// Router interprets and dispatches the lines of active sessions.
type Router struct {
	registry *Registry
	journal  *journal.Store

	// console mirrors every broadcast to the server's own output.
	console io.Writer

	logger zerolog.Logger
}

// NewRouter constructs a Router over the given registry and journal.
func NewRouter(registry *Registry, store *journal.Store, console io.Writer) *Router {
	routerLogger := logx.Logger().With().Str("component", "Router").Logger()

	return &Router{
		registry: registry,
		journal:  store,
		console:  console,
		logger:   routerLogger,
	}
}

// Dispatch classifies one input line from an active session.
func (rt *Router) Dispatch(sender Peer, line string) Action {
	switch {
	case line == ExitToken:
		return ActionDisconnect

	case strings.HasPrefix(line, "@"):
		rt.whisper(sender, line)
		return ActionContinue

	default:
		rt.broadcast(sender, line)
		return ActionContinue
	}
}

// broadcast delivers the line to every registered session except the sender,
// mirrors it to the server console, and appends the plain form to the journal.
// A failed send to one recipient never aborts delivery to the rest.
func (rt *Router) broadcast(sender Peer, body string) {
	styled := fmt.Sprintf("%s: %s", sender.DisplayName(), body)
	plain := fmt.Sprintf("%s: %s", sender.Name(), body)

	fmt.Fprintln(rt.console, styled)

	for _, p := range rt.registry.Snapshot() {
		if p == sender {
			continue
		}

		if err := p.Send(styled); err != nil {
			rt.logger.Warn().
				Err(err).
				Str("sender", sender.Name()).
				Str("recipient", p.Name()).
				Msg("Broadcast delivery failed for one recipient. Continuing.")
		}
	}

	// Persistence is best-effort relative to delivery.
	if err := rt.journal.Append(plain); err != nil {
		rt.logger.Error().
			Err(err).
			Str("sender", sender.Name()).
			Msg("Unable to journal broadcast message.")
	}
}

// Shout delivers an administrative broadcast to every registered session,
// including formatting distinct from ordinary broadcasts, and journals it.
func (rt *Router) Shout(message string) {
	styled := colorx.AdminLine(message)

	for _, p := range rt.registry.Snapshot() {
		if err := p.Send(styled); err != nil {
			rt.logger.Warn().
				Err(err).
				Str("recipient", p.Name()).
				Msg("Shout delivery failed for one recipient. Continuing.")
		}
	}

	if err := rt.journal.Append("ADMIN: " + message); err != nil {
		rt.logger.Error().Err(err).Msg("Unable to journal admin shout.")
	}
}

// whisper parses `@name1,name2,...:body` and delivers the body to each named
// recipient only. Whispers are never echoed to other participants and never
// journaled. A missing ':' is a syntax error reported to the sender; each
// unknown recipient name is reported individually.
func (rt *Router) whisper(sender Peer, line string) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		rt.notify(sender, colorx.Alert(errs.NewError(errs.ErrMalformedWhisper).Message))
		return
	}

	recipients := strings.Split(line[1:colon], ",")
	body := strings.TrimSpace(line[colon+1:])

	for _, raw := range recipients {
		name := strings.TrimSpace(raw)

		recipient, ok := rt.registry.FindByName(name)
		if !ok {
			// Empty tokens from lists like "@bob,:hi" fall through here too.
			rt.notify(sender, colorx.Alert(errs.NewError(errs.ErrRecipientNotFound, name).Message))
			continue
		}

		if err := recipient.Send(colorx.WhisperLine(sender.Name(), body)); err != nil {
			rt.logger.Warn().
				Err(err).
				Str("sender", sender.Name()).
				Str("recipient", recipient.Name()).
				Msg("Whisper delivery failed.")
		}
	}
}

// notify sends a status notice back to the sender, logging a failure instead
// of propagating it.
func (rt *Router) notify(sender Peer, text string) {
	if err := sender.Send(text); err != nil {
		rt.logger.Warn().
			Err(err).
			Str("recipient", sender.Name()).
			Msg("Unable to deliver notice to sender.")
	}
}
