package server

import "github.com/lawnchairsociety/tenebrae/internal/session"

// Client abstracts the connection layer for both telnet and WebSocket
// connections so one session loop can serve either.
type Client interface {
	session.Client

	// Close closes the connection, unblocking any pending ReadLine.
	Close() error

	// RemoteAddr returns the client's address for logging.
	RemoteAddr() string
}
