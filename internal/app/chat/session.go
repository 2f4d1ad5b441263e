/*
Package chat contains the core logic for session lifecycle, the concurrent
session registry, and message routing between connected clients.

This file defines the Session struct, representing one connected client. The
session exclusively owns its connection, runs the naming handshake, then
feeds every received line to the Router until disconnect, exit, or kick.
*/
package chat

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shadoomedia/chat-server/internal/pkg/colorx"
	"github.com/shadoomedia/chat-server/internal/pkg/errs"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

const (
	namePrompt     = "Type your name here:"
	welcomeNotice  = "Connected to Server! Enjoy"
	farewellNotice = "Connection closed... goodbye"
)

// Session represents one connected, eventually-named client.
type Session struct {
	// id correlates all log lines of this connection, named or not.
	id string

	conn   net.Conn
	reader *bufio.Reader
	core   *Core

	// tag is the cosmetic display color assigned at creation.
	tag colorx.Tag

	// limiter bounds the message rate of the Active read loop.
	limiter *rate.Limiter

	addr string
	port int

	// mu guards name and state.
	mu    sync.Mutex
	name  string
	state State

	// writeMu keeps one session's own sends from interleaving with themselves.
	writeMu sync.Mutex

	// closeOnce makes teardown idempotent across exit, kick, and disconnect.
	closeOnce sync.Once

	logger zerolog.Logger
}

// newSession constructs a Session over an accepted connection.
func newSession(conn net.Conn, core *Core) *Session {
	id := uuid.New().String()

	addr, port := splitRemoteAddr(conn.RemoteAddr())

	sessionLogger := logx.Logger().With().
		Str("component", "Session").
		Str("session_id", id).
		Str("remote_addr", addr).
		Int("remote_port", port).
		Logger()

	limit := rate.Inf
	burst := 1
	if core.cfg.MessageRate > 0 {
		limit = rate.Limit(core.cfg.MessageRate)
		burst = max(core.cfg.MessageBurst, 1)
	}

	return &Session{
		id:      id,
		conn:    conn,
		reader:  bufio.NewReader(conn),
		core:    core,
		tag:     colorx.RandomTag(),
		limiter: rate.NewLimiter(limit, burst),
		addr:    addr,
		port:    port,
		state:   StateConnecting,
		logger:  sessionLogger,
	}
}

// splitRemoteAddr extracts host and port from the connection's remote address.
// Transports without a host:port form (in-memory pipes) keep the raw string.
func splitRemoteAddr(remote net.Addr) (string, int) {
	host, portStr, err := net.SplitHostPort(remote.String())
	if err != nil {
		return remote.String(), 0
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 0
	}

	return host, port
}

// Run executes the full session lifecycle: naming handshake, Active read
// loop, teardown. It blocks until the session reaches Closed, so the caller
// runs it on a dedicated goroutine.
func (s *Session) Run() {
	defer s.shutdown()

	s.setState(StateNaming)

	if err := s.handshake(); err != nil {
		s.logger.Info().Err(err).Msg("Session ended during naming handshake.")
		return
	}

	s.setState(StateActive)
	s.logger.Info().Str("name", s.Name()).Msg("Session active.")

	s.readLoop()
}

// handshake prompts for a display name until an unused one arrives, registers
// the session, sends the welcome notice, and replays recent history.
// A peer that disconnects mid-handshake never appears in the registry.
func (s *Session) handshake() error {
	if err := s.Send(colorx.Prompt(namePrompt)); err != nil {
		return err
	}

	for {
		candidate, err := s.readLine()
		if err != nil {
			return err
		}

		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			if err := s.Send(colorx.Alert(errs.NewError(errs.ErrNameTaken).Message)); err != nil {
				return err
			}
			continue
		}

		s.setName(candidate)
		if cerr := s.core.registry.Register(candidate, s); cerr != nil {
			s.setName("")
			if err := s.Send(colorx.Alert(cerr.Message)); err != nil {
				return err
			}
			continue
		}

		break
	}

	if err := s.Send(colorx.Welcome(welcomeNotice)); err != nil {
		return err
	}

	s.replayHistory()

	return nil
}

// replayHistory sends the bounded journal tail to the freshly named client.
// Journal trouble degrades to an empty replay rather than failing the handshake.
func (s *Session) replayHistory() {
	tail, err := s.core.journal.ReadTail(s.core.cfg.HistoryDepth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Unable to read journal tail for history replay.")
		return
	}

	for _, line := range tail {
		if err := s.Send(colorx.HistoryLine(line)); err != nil {
			s.logger.Warn().Err(err).Msg("History replay interrupted by send failure.")
			return
		}
	}
}

// readLoop receives one line at a time and hands it to the Router until the
// peer disconnects, sends the exit token, or an out-of-band kick closes the
// connection underneath the blocking read.
func (s *Session) readLoop() {
	for {
		line, err := s.readLine()
		if err != nil {
			s.logger.Info().Err(err).Str("name", s.Name()).Msg("Session connection closed.")
			return
		}

		if !s.limiter.Allow() {
			if err := s.Send(colorx.Alert(errs.NewError(errs.ErrRateLimited).Message)); err != nil {
				return
			}
			continue
		}

		if s.core.router.Dispatch(s, line) == ActionDisconnect {
			s.logger.Info().Str("name", s.Name()).Msg("Session requested exit.")
			return
		}
	}
}

// readLine blocks until one newline-terminated line arrives, returning it
// without the trailing newline.
func (s *Session) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// shutdown drives the session through Closing to Closed: best-effort
// farewell, connection close, registry removal, name cleared. Safe to reach
// from exit, kick, disconnect, and server shutdown at once.
func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		s.setState(StateClosing)

		// Best-effort; the peer may already be gone.
		_ = s.Send(colorx.Alert(farewellNotice))

		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Session connection close error during teardown.")
		}

		s.core.registry.Unregister(s)
		s.setName("")
		s.setState(StateClosed)

		s.logger.Info().Msg("Session closed.")
	})
}

// Kick notifies the peer and closes the connection out-of-band, which
// unblocks the session's read loop and lets its own goroutine finish teardown.
func (s *Session) Kick(reason string) {
	s.logger.Warn().
		Str("name", s.Name()).
		Str("reason", reason).
		Msg("Kicking session.")

	s.setState(StateClosing)

	_ = s.Send(colorx.Alert(errs.NewError(errs.ErrSessionKicked).Message))

	if err := s.conn.Close(); err != nil {
		s.logger.Debug().Err(err).Msg("Session connection close error during kick.")
	}
}

// Send writes one newline-terminated, immediately flushed line to the peer.
func (s *Session) Send(text string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.conn.Write([]byte(text + "\n"))
	return err
}

// Name returns the assigned display name, or "" outside Active.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.name
}

// DisplayName returns the name rendered in the session's color tag.
func (s *Session) DisplayName() string {
	return s.tag.Name(s.Name())
}

// Addr returns the remote host address.
func (s *Session) Addr() string {
	return s.addr
}

// Port returns the remote port.
func (s *Session) Port() int {
	return s.port
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) setName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Closed is terminal.
	if s.state == StateClosed {
		return
	}

	s.state = state
}
