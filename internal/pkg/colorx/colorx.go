/*
Package colorx centralizes the ANSI styling of chat protocol lines.

Colors carry no protocol meaning: every style here is cosmetic and the plain
text is what gets journaled. Rendering is forced on so the escape codes
survive non-TTY pipes and reach the remote client terminals intact.
*/
package colorx

import (
	"math/rand"

	"github.com/gookit/color"
)

func init() {
	color.ForceOpenColor()
}

var (
	promptStyle  = color.New(color.FgYellow)
	welcomeStyle = color.New(color.FgGreen)
	alertStyle   = color.New(color.FgLightRed)
	whisperStyle = color.New(color.FgLightCyan)
	adminStyle   = color.New(color.FgLightMagenta)
	historyStyle = color.New(color.FgGray)
)

// palette holds the colors a session's name tag is drawn from.
var palette = []color.Color{
	color.FgRed,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
	color.FgLightGreen,
	color.FgLightYellow,
	color.FgLightBlue,
	color.FgLightMagenta,
}

// Tag is the cosmetic display color assigned to one session at creation.
type Tag struct {
	c color.Color
}

// RandomTag picks a pseudo-random tag from the palette.
func RandomTag() Tag {
	return Tag{c: palette[rand.Intn(len(palette))]}
}

// Name renders the given display name in the tag's color.
func (t Tag) Name(name string) string {
	return t.c.Render(name)
}

// Prompt styles a handshake prompt line.
func Prompt(text string) string {
	return promptStyle.Render(text)
}

// Welcome styles the post-handshake welcome notice.
func Welcome(text string) string {
	return welcomeStyle.Render(text)
}

// Alert styles error and kick notices.
func Alert(text string) string {
	return alertStyle.Render(text)
}

// HistoryLine styles one replayed journal line.
func HistoryLine(line string) string {
	return historyStyle.Render(line)
}

// WhisperLine formats a whisper for delivery: the marker and sender are
// styled, the body is left plain.
func WhisperLine(from, body string) string {
	return whisperStyle.Render("<whisper>"+from+": ") + body
}

// AdminLine formats an administrative shout.
func AdminLine(body string) string {
	return adminStyle.Render("ADMIN: ") + body
}

// AdminWhisperLine formats a direct administrative whisper.
func AdminWhisperLine(body string) string {
	return adminStyle.Render("<whisper>ADMIN: ") + body
}
