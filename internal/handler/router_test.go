package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/shadoomedia/chat-server/internal/app/chat"
	"github.com/shadoomedia/chat-server/internal/app/journal"
	"github.com/shadoomedia/chat-server/internal/configs"
)

func newTestDeps(t *testing.T) *AppDeps {
	t.Helper()

	store, err := journal.Open(filepath.Join(t.TempDir(), "chathistory.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &configs.AppConfig{
		Environment:  "development",
		HistoryDepth: 10,
	}

	return &AppDeps{
		Core:    chat.NewCore(cfg, store),
		Journal: store,
		Config:  cfg,
	}
}

func TestRouter_Healthz(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps(t)

	server := httptest.NewServer(Router(deps))
	defer server.Close()

	res, err := http.Get(server.URL + "/healthz")
	req.NoError(err)
	defer res.Body.Close()

	req.Equal(http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	req.NoError(err)
	req.Contains(string(body), `"status":"ok"`)
	req.Contains(string(body), `"sessions":0`)
}

func TestRouter_History(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps(t)

	req.NoError(deps.Journal.Append("alice: for the record"))

	server := httptest.NewServer(Router(deps))
	defer server.Close()

	res, err := http.Get(server.URL + "/history")
	req.NoError(err)
	defer res.Body.Close()

	req.Equal(http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	req.NoError(err)
	req.Contains(string(body), "alice: for the record")
}

func TestWebSocketBridge_RunsNamingHandshake(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps(t)

	server := httptest.NewServer(Router(deps))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	if res != nil {
		defer res.Body.Close()
	}
	defer conn.Close()

	_, prompt, err := conn.ReadMessage()
	req.NoError(err)
	req.Contains(string(prompt), "Type your name here:")

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("webuser")))

	_, welcome, err := conn.ReadMessage()
	req.NoError(err)
	req.Contains(string(welcome), "Connected to Server!")

	req.Eventually(func() bool {
		return deps.Core.Registry().Exists("webuser")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketBridge_BroadcastIsJournaled(t *testing.T) {
	req := require.New(t)
	deps := newTestDeps(t)

	server := httptest.NewServer(Router(deps))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	if res != nil {
		defer res.Body.Close()
	}
	defer conn.Close()

	_, _, err = conn.ReadMessage() // prompt
	req.NoError(err)
	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("webuser")))
	_, _, err = conn.ReadMessage() // welcome
	req.NoError(err)

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("hello from the bridge")))

	req.Eventually(func() bool {
		content, err := deps.Journal.ReadAll()
		return err == nil && strings.Contains(content, "webuser: hello from the bridge")
	}, 2*time.Second, 10*time.Millisecond)
}
