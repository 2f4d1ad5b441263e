package chat

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakePeer is an in-memory Peer recording everything delivered to it.
type fakePeer struct {
	name     string
	addr     string
	port     int
	failSend bool

	mu     sync.Mutex
	lines  []string
	kicked bool
}

func newFakePeer(name string) *fakePeer {
	return &fakePeer{name: name, addr: "127.0.0.1", port: 4242}
}

func (f *fakePeer) Name() string        { return f.name }
func (f *fakePeer) DisplayName() string { return f.name }
func (f *fakePeer) Addr() string        { return f.addr }
func (f *fakePeer) Port() int           { return f.port }

func (f *fakePeer) Send(text string) error {
	if f.failSend {
		return errors.New("peer gone")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, text)
	return nil
}

func (f *fakePeer) Kick(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicked = true
}

func (f *fakePeer) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func (f *fakePeer) Kicked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kicked
}

func TestRegistry_Register_And_Lookup(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newFakePeer("Alice")

	req.Nil(registry.Register("Alice", alice))
	req.Equal(1, registry.Len())

	// Lookups are case-insensitive exact matches.
	found, ok := registry.FindByName("alice")
	req.True(ok)
	req.Same(alice, found)

	req.True(registry.Exists("ALICE"))
	req.False(registry.Exists("bob"))
}

func TestRegistry_Register_NameConflictIsCaseInsensitive(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.Nil(registry.Register("Alice", newFakePeer("Alice")))

	cerr := registry.Register("ALICE", newFakePeer("ALICE"))
	req.NotNil(cerr)
	req.Equal(1, registry.Len())
}

func TestRegistry_ConcurrentDistinctNames_AllSucceed(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const attempts = 64

	var wg sync.WaitGroup
	failures := make(chan string, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("user-%d", n)
			if cerr := registry.Register(name, newFakePeer(name)); cerr != nil {
				failures <- name
			}
		}(i)
	}
	wg.Wait()
	close(failures)

	req.Empty(failures)
	req.Equal(attempts, registry.Len())
}

func TestRegistry_ConcurrentSameName_ExactlyOneWins(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	const attempts = 32

	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			// Case variants still collide on one key.
			name := "Highlander"
			if n%2 == 0 {
				name = "highlander"
			}
			if cerr := registry.Register(name, newFakePeer(name)); cerr == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	req.EqualValues(1, successes)
	req.Equal(1, registry.Len())
}

func TestRegistry_Unregister_IsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newFakePeer("alice")

	req.Nil(registry.Register("alice", alice))

	registry.Unregister(alice)
	req.False(registry.Exists("alice"))

	// A second removal and a removal of an unknown peer are both no-ops.
	registry.Unregister(alice)
	registry.Unregister(newFakePeer("ghost"))
	req.Equal(0, registry.Len())
}

func TestRegistry_Unregister_MatchesByIdentityNotName(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := newFakePeer("alice")

	req.Nil(registry.Register("alice", alice))

	// The session clears its name during teardown before unregistering.
	alice.name = ""
	registry.Unregister(alice)

	req.Equal(0, registry.Len())
}

func TestRegistry_List_SortedSummaries(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	carol := newFakePeer("carol")
	carol.port = 5001
	req.Nil(registry.Register("carol", carol))
	req.Nil(registry.Register("Alice", newFakePeer("Alice")))
	req.Nil(registry.Register("bob", newFakePeer("bob")))

	summaries := registry.List()
	req.Len(summaries, 3)
	req.Equal("Alice", summaries[0].Name)
	req.Equal("bob", summaries[1].Name)
	req.Equal("carol", summaries[2].Name)

	req.Equal("carol@127.0.0.1:5001", summaries[2].Identity())
}
