/*
Package chat contains the core logic for session lifecycle, the concurrent
session registry, and message routing between connected clients.

This file defines the Registry, the concurrency-safe directory of active
sessions keyed by display name. Names are unique case-insensitively; every
mutation and lookup holds the registry lock so no caller ever observes a
partially inserted or removed entry.
*/
package chat

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/shadoomedia/chat-server/internal/pkg/errs"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

// Peer is the registry's view of a registered session: enough to address it,
// deliver lines to it, and force it off the server.
type Peer interface {
	// Name returns the assigned display name, or "" before the handshake completes.
	Name() string

	// DisplayName returns the color-tagged rendering of the name.
	DisplayName() string

	// Addr returns the remote host address of the session's connection.
	Addr() string

	// Port returns the remote port of the session's connection.
	Port() int

	// Send delivers one newline-terminated line to the peer.
	Send(text string) error

	// Kick notifies the peer and forces its connection closed.
	Kick(reason string)
}

// Summary is one row of the connected-sessions listing.
type Summary struct {
	Name string
	Addr string
	Port int
}

// Identity is the composite form used to disambiguate sessions with the
// same-looking name in administrative commands.
func (s Summary) Identity() string {
	return fmt.Sprintf("%s@%s:%d", s.Name, s.Addr, s.Port)
}

// Registry is the process-wide directory of active sessions.
type Registry struct {
	// mu protects concurrent access to the peers map.
	mu sync.RWMutex

	// peers maps the lowercased display name to the registered session.
	peers map[string]Peer

	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	registryLogger := logx.Logger().With().Str("component", "Registry").Logger()

	return &Registry{
		peers:  make(map[string]Peer),
		logger: registryLogger,
	}
}

// Register inserts the peer under the given name. It fails with ErrNameTaken
// when any existing entry matches the name case-insensitively. Check and
// insert happen under one lock so concurrent registrations of the same name
// admit exactly one winner.
func (r *Registry) Register(name string, p Peer) *errs.CustomError {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.peers[key]; taken {
		r.logger.Warn().Str("name", name).Msg("Registration rejected: name already in use.")
		return errs.NewError(errs.ErrNameTaken)
	}

	r.peers[key] = p
	r.logger.Info().
		Str("name", name).
		Int("total_sessions", len(r.peers)).
		Msg("Session registered.")

	return nil
}

// Unregister removes the entry holding this peer, if any. It matches by
// identity rather than by name so the call stays correct even after the
// session's name has been cleared during teardown. Idempotent.
func (r *Registry) Unregister(p Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, registered := range r.peers {
		if registered == p {
			delete(r.peers, key)
			r.logger.Info().
				Str("name", key).
				Int("total_sessions", len(r.peers)).
				Msg("Session unregistered.")
			return
		}
	}
}

// FindByName returns the session registered under the name, case-insensitively.
func (r *Registry) FindByName(name string) (Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.peers[strings.ToLower(name)]
	return p, ok
}

// Exists reports whether any session is registered under the name.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.peers[strings.ToLower(name)]
	return ok
}

// Snapshot returns the currently registered peers. The slice reflects a state
// that held at some instant during the call; delivery loops iterate over it
// without holding the registry lock.
func (r *Registry) Snapshot() []Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Values(r.peers)
}

// List returns a name-sorted summary of all registered sessions.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	peers := lo.Values(r.peers)
	r.mu.RUnlock()

	summaries := lo.Map(peers, func(p Peer, _ int) Summary {
		return Summary{
			Name: p.Name(),
			Addr: p.Addr(),
			Port: p.Port(),
		}
	})

	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})

	return summaries
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.peers)
}
