package server

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketClient wraps a WebSocket connection for browser-based play.
// Each WriteLine is one text message.
type WebSocketClient struct {
	conn    *websocket.Conn
	pending []string   // Remaining lines of a multi-line message
	writeMu sync.Mutex // gorilla allows one concurrent writer
}

// NewWebSocketClient creates a client. maxMessageSize <= 0 keeps gorilla's
// default read limit.
func NewWebSocketClient(conn *websocket.Conn, maxMessageSize int64) *WebSocketClient {
	if maxMessageSize > 0 {
		conn.SetReadLimit(maxMessageSize)
	}
	return &WebSocketClient{conn: conn}
}

// ReadLine returns the next non-blank line. A message holding several lines
// is split and served one line per call. A close frame from the peer is
// reported as io.EOF.
func (c *WebSocketClient) ReadLine() (string, error) {
	for len(c.pending) == 0 {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return "", io.EOF
			}
			return "", err
		}
		for _, line := range strings.Split(string(message), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				c.pending = append(c.pending, trimmed)
			}
		}
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

// WriteLine sends message as one text frame.
func (c *WebSocketClient) WriteLine(message string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Close closes the WebSocket connection.
func (c *WebSocketClient) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
