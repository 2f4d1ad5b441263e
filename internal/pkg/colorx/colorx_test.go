package colorx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomTag_RendersName(t *testing.T) {
	req := require.New(t)

	tag := RandomTag()
	req.Contains(tag.Name("alice"), "alice")
}

func TestWhisperLine_CarriesMarkerAndPlainBody(t *testing.T) {
	req := require.New(t)

	line := WhisperLine("alice", "psst")
	req.Contains(line, "<whisper>alice: ")
	req.Contains(line, "psst")
}

func TestAdminLines(t *testing.T) {
	req := require.New(t)

	req.Contains(AdminLine("hello"), "ADMIN: ")
	req.Contains(AdminWhisperLine("hello"), "<whisper>ADMIN: ")
}
