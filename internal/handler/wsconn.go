/*
Package handler provides the HTTP surface of the chat server.

This file defines WSConn, a net.Conn adapter over a WebSocket connection.
Each inbound text message becomes one newline-terminated line and each
outbound line becomes one text message, so the chat core's line protocol
works unchanged over the bridge.
*/
package handler

import (
	"bytes"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// WSConn adapts a *websocket.Conn to the net.Conn shape the chat core expects.
type WSConn struct {
	ws *websocket.Conn

	// buf holds the unread remainder of the current inbound message.
	buf []byte
}

// NewWSConn wraps the upgraded WebSocket connection.
func NewWSConn(ws *websocket.Conn) *WSConn {
	return &WSConn{ws: ws}
}

// Read surfaces inbound messages as newline-terminated bytes. A message
// without a trailing newline gets one appended, since WebSocket clients
// frame per message rather than per line.
func (c *WSConn) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}

		if len(data) == 0 {
			continue
		}

		if data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}

		c.buf = data
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]

	return n, nil
}

// Write sends one outbound line as a single text message, without the
// trailing newline the line protocol carries.
func (c *WSConn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.TextMessage, bytes.TrimRight(p, "\n")); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close closes the underlying WebSocket connection.
func (c *WSConn) Close() error {
	return c.ws.Close()
}

// LocalAddr returns the local network address.
func (c *WSConn) LocalAddr() net.Addr {
	return c.ws.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *WSConn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

// SetDeadline sets both read and write deadlines.
func (c *WSConn) SetDeadline(t time.Time) error {
	if err := c.ws.SetReadDeadline(t); err != nil {
		return err
	}

	return c.ws.SetWriteDeadline(t)
}

// SetReadDeadline sets the read deadline of the underlying connection.
func (c *WSConn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline of the underlying connection.
func (c *WSConn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}
