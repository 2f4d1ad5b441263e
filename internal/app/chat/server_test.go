package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCore_Kick_ByNameAndByComposite(t *testing.T) {
	req := require.New(t)
	core := newTestCore(t, nil)

	bob := newFakePeer("bob")
	bob.port = 5001
	req.Nil(core.Registry().Register("bob", bob))

	req.NoError(core.Kick("BOB"))
	req.True(bob.Kicked())
	req.False(core.Registry().Exists("bob"))

	carol := newFakePeer("carol")
	carol.port = 5002
	req.Nil(core.Registry().Register("carol", carol))

	req.NoError(core.Kick("carol@127.0.0.1:5002"))
	req.True(carol.Kicked())
	req.False(core.Registry().Exists("carol"))
}

func TestCore_Kick_UnknownIdentityLeavesRegistryUntouched(t *testing.T) {
	req := require.New(t)
	core := newTestCore(t, nil)

	bob := newFakePeer("bob")
	req.Nil(core.Registry().Register("bob", bob))

	err := core.Kick("ghost")
	req.Error(err)
	req.Contains(err.Error(), "not found")

	req.False(bob.Kicked())
	req.Equal(1, core.Registry().Len())
}

func TestCore_Shout_DeliversToAllAndJournals(t *testing.T) {
	req := require.New(t)
	core := newTestCore(t, nil)

	alice := newFakePeer("alice")
	bob := newFakePeer("bob")
	req.Nil(core.Registry().Register("alice", alice))
	req.Nil(core.Registry().Register("bob", bob))

	core.Shout("server restart soon")

	req.Len(alice.Lines(), 1)
	req.Contains(alice.Lines()[0], "ADMIN: ")
	req.Len(bob.Lines(), 1)

	history, err := core.ShowHistory()
	req.NoError(err)
	req.Contains(history, "ADMIN: server restart soon")
}

func TestCore_Whisper_AdminDirectMessage(t *testing.T) {
	req := require.New(t)
	core := newTestCore(t, nil)

	bob := newFakePeer("bob")
	req.Nil(core.Registry().Register("bob", bob))

	req.NoError(core.Whisper("Bob", "behave yourself"))
	req.Len(bob.Lines(), 1)
	req.Contains(bob.Lines()[0], "<whisper>ADMIN: ")
	req.Contains(bob.Lines()[0], "behave yourself")

	err := core.Whisper("ghost", "anyone there?")
	req.Error(err)
	req.Contains(err.Error(), "Recipient not found")
}

func TestCore_ListConnected_RendersTable(t *testing.T) {
	req := require.New(t)
	core := newTestCore(t, nil)

	req.Nil(core.Registry().Register("alice", newFakePeer("alice")))
	req.Nil(core.Registry().Register("bob", newFakePeer("bob")))

	listing := core.ListConnected()
	req.Contains(listing, "alice")
	req.Contains(listing, "bob")
	req.Contains(listing, "2 client(s) connected")
}

func TestCore_ClearHistory_EmptiesJournal(t *testing.T) {
	req := require.New(t)
	core := newTestCore(t, nil)

	req.Nil(core.Registry().Register("alice", newFakePeer("alice")))
	core.Shout("to be forgotten")

	req.NoError(core.ClearHistory())

	history, err := core.ShowHistory()
	req.NoError(err)
	req.Empty(history)

	// The journal keeps accepting entries after a clear.
	core.Shout("fresh start")
	history, err = core.ShowHistory()
	req.NoError(err)
	req.Contains(history, "ADMIN: fresh start")
}
