/*
Package handler provides the HTTP surface of the chat server.

This file contains the WebSocket bridge: after rate limiting and upgrading,
the socket is wrapped into a line-oriented net.Conn adapter and handed to the
chat core, which runs the exact same session lifecycle as for raw TCP.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/shadoomedia/chat-server/internal/pkg/errs"
	"github.com/shadoomedia/chat-server/internal/pkg/limiter"
	"github.com/shadoomedia/chat-server/internal/pkg/logx"
	"github.com/shadoomedia/chat-server/internal/pkg/resp"
)

// HandleWebSocket creates the HandlerFunc bridging WebSocket clients into the
// chat core's session handling.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error response.
			logx.Warn("WebSocket upgrade failed.", "ip", ip, "error", err.Error())
			return
		}

		logx.Info("WebSocket client bridged into chat core.", "remote_addr", conn.RemoteAddr().String())

		deps.Core.HandleConn(NewWSConn(conn))
	}
}
