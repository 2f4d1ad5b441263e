package errs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError_KnownCode(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrNameTaken)
	req.Equal(ErrNameTaken, err.Code)
	req.Contains(err.Message, "already exists")
	req.Contains(err.Error(), "1001")
}

func TestNewError_FormatsDetails(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrRecipientNotFound, "ghost")
	req.Equal("Recipient not found: ghost", err.Message)

	err = NewError(ErrTargetNotFound, "bob@127.0.0.1:5001")
	req.Contains(err.Message, "bob@127.0.0.1:5001")
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	req := require.New(t)

	err := NewError(999999)
	req.Equal(ErrUnknown, err.Code)
}
