/*
Package console implements the interactive administrative console.

It is thin glue: lines read from the input stream are parsed into the core's
administrative operations (kick, list, shout, clear/show history, direct
whisper) and the results are printed back. No chat logic lives here.
*/
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shadoomedia/chat-server/internal/pkg/logx"
)

// Admin is the surface the console invokes on the chat core.
type Admin interface {
	Kick(identity string) error
	Shout(message string)
	Whisper(name, body string) error
	ListConnected() string
	ShowHistory() (string, error)
	ClearHistory() error
}

// Console reads administrative commands from one input stream.
type Console struct {
	admin Admin
	in    io.Reader
	out   io.Writer

	logger zerolog.Logger
}

// New constructs a Console over the given streams.
func New(admin Admin, in io.Reader, out io.Writer) *Console {
	consoleLogger := logx.Logger().With().Str("component", "Console").Logger()

	return &Console{
		admin:  admin,
		in:     in,
		out:    out,
		logger: consoleLogger,
	}
}

// Run processes commands until the input stream ends. It blocks, so the
// caller runs it on a dedicated goroutine.
func (c *Console) Run() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.handle(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		c.logger.Error().Err(err).Msg("Console input stream failed.")
	}
}

// handle parses and executes a single console line.
func (c *Console) handle(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	switch {
	case strings.HasPrefix(input, "@"):
		c.handleWhisper(input)

	case strings.HasPrefix(input, "/"):
		c.handleCommand(input)

	default:
		c.logger.Info().Str("input", input).Msg("Console input ignored (not a command).")
	}
}

// handleWhisper parses `@name1,name2:message` and delivers an administrative
// whisper to each named recipient.
func (c *Console) handleWhisper(input string) {
	colon := strings.Index(input, ":")
	if colon < 0 {
		fmt.Fprintln(c.out, "Invalid format. Please use: @name1,name2:message")
		return
	}

	names := strings.Split(input[1:colon], ",")
	body := strings.TrimSpace(input[colon+1:])

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if err := c.admin.Whisper(name, body); err != nil {
			fmt.Fprintln(c.out, err.Error())
		}
	}
}

func (c *Console) handleCommand(input string) {
	command, arguments, _ := strings.Cut(input, " ")
	arguments = strings.TrimSpace(arguments)

	switch command {
	case "/kick":
		if err := c.admin.Kick(arguments); err != nil {
			fmt.Fprintln(c.out, err.Error())
		}

	case "/users":
		fmt.Fprint(c.out, c.admin.ListConnected())

	case "/shout":
		c.admin.Shout(arguments)

	case "/clearhistory":
		if err := c.admin.ClearHistory(); err != nil {
			fmt.Fprintln(c.out, err.Error())
			return
		}
		fmt.Fprintln(c.out, "Chat history cleared.")

	case "/showhistory":
		history, err := c.admin.ShowHistory()
		if err != nil {
			fmt.Fprintln(c.out, err.Error())
			return
		}
		fmt.Fprint(c.out, history)

	default:
		fmt.Fprintf(c.out, "Unknown command: %s\n", command)
	}
}
