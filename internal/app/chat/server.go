/*
Package chat contains the core logic for session lifecycle, the concurrent
session registry, and message routing between connected clients.

This file defines the Core struct, which owns the registry, the journal, and
the accept loop, spawns one goroutine per accepted connection, and exposes
the administrative operations consumed by the external console.
*/
package chat

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"github.com/shadoomedia/chat-server/internal/app/journal"
	"github.com/shadoomedia/chat-server/internal/configs"
	"github.com/shadoomedia/chat-server/internal/pkg/colorx"
	"github.com/shadoomedia/chat-server/internal/pkg/errs"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

// Core owns the shared state of the chat server and its accept loop.
type Core struct {
	cfg      *configs.AppConfig
	registry *Registry
	journal  *journal.Store
	router   *Router

	// mu guards listener.
	mu       sync.Mutex
	listener net.Listener

	logger zerolog.Logger
}

// NewCore wires the registry and router over the given journal store.
// Broadcasts are mirrored to stdout, the server's own output.
func NewCore(cfg *configs.AppConfig, store *journal.Store) *Core {
	coreLogger := logx.Logger().With().Str("component", "Core").Logger()

	registry := NewRegistry()

	return &Core{
		cfg:      cfg,
		registry: registry,
		journal:  store,
		router:   NewRouter(registry, store, os.Stdout),
		logger:   coreLogger,
	}
}

// Registry exposes the session directory to the status surface.
func (c *Core) Registry() *Registry {
	return c.registry
}

// ListenAndServe binds the chat listener once and accepts connections until
// Shutdown closes the listener. A bind failure is returned to the caller and
// the server does not start; individual accept failures are logged and the
// loop continues.
func (c *Core) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind chat listener on %s: %w", addr, err)
	}

	c.mu.Lock()
	c.listener = listener
	c.mu.Unlock()

	c.logger.Info().Str("addr", listener.Addr().String()).Msg("Chat server listening.")

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				c.logger.Info().Msg("Chat listener closed. Accept loop finished.")
				return nil
			}

			c.logger.Error().Err(err).Msg("Failed to accept connection. Continuing.")
			continue
		}

		c.logger.Info().
			Str("remote_addr", conn.RemoteAddr().String()).
			Msg("Client connection accepted.")

		c.HandleConn(conn)
	}
}

// HandleConn runs a new session over the connection on its own goroutine.
// The WebSocket bridge feeds its adapted connections through here as well.
func (c *Core) HandleConn(conn net.Conn) {
	s := newSession(conn, c)
	go s.Run()
}

// Kick finds the session by name or by its name@address:port composite
// (case-insensitive), notifies it, forces its connection closed, and removes
// it from the registry. Returns ErrTargetNotFound when nothing matches.
func (c *Core) Kick(identity string) error {
	identity = strings.TrimSpace(identity)

	for _, p := range c.registry.Snapshot() {
		composite := fmt.Sprintf("%s@%s:%d", p.Name(), p.Addr(), p.Port())

		if !strings.EqualFold(p.Name(), identity) && !strings.EqualFold(composite, identity) {
			continue
		}

		p.Kick("kicked by administrator")
		// Removal is immediate rather than waiting for the session goroutine
		// to observe its closed connection. Unregister is idempotent.
		c.registry.Unregister(p)

		c.logger.Info().Str("identity", identity).Msg("Session kicked and unregistered.")
		return nil
	}

	c.logger.Warn().Str("identity", identity).Msg("Kick target not found.")
	return errs.NewError(errs.ErrTargetNotFound, identity)
}

// Shout delivers an administrative broadcast to all active sessions and
// journals it.
func (c *Core) Shout(message string) {
	c.router.Shout(message)
}

// Whisper delivers a direct administrative message to the named session.
func (c *Core) Whisper(name, body string) error {
	recipient, ok := c.registry.FindByName(strings.TrimSpace(name))
	if !ok {
		return errs.NewError(errs.ErrRecipientNotFound, name)
	}

	return recipient.Send(colorx.AdminWhisperLine(body))
}

// ListConnected renders the registered sessions as a table for the console.
func (c *Core) ListConnected() string {
	summaries := c.registry.List()

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Name", "Address", "Port"})

	for _, s := range summaries {
		table.Append([]string{s.Name, s.Addr, fmt.Sprintf("%d", s.Port)})
	}

	table.Render()
	sb.WriteString(fmt.Sprintf("%d client(s) connected\n", len(summaries)))

	return sb.String()
}

// ShowHistory returns the full journal contents.
func (c *Core) ShowHistory() (string, error) {
	return c.journal.ReadAll()
}

// ClearHistory truncates the journal.
func (c *Core) ClearHistory() error {
	return c.journal.Clear()
}

// Shutdown closes the listener, ending the accept loop, then forces every
// active session through teardown.
func (c *Core) Shutdown() {
	c.logger.Info().Msg("Shutting down chat core...")

	c.mu.Lock()
	if c.listener != nil {
		if err := c.listener.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Error closing chat listener.")
		}
		c.listener = nil
	}
	c.mu.Unlock()

	for _, p := range c.registry.Snapshot() {
		p.Kick("server shutting down")
		c.registry.Unregister(p)
	}

	c.logger.Info().Msg("Chat core shutdown complete.")
}
