// Package testclient plays a game over telnet the way a person would,
// keeping every line the server sends so tests can wait on output.
package testclient

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// TestClient is a telnet connection to a running server.
type TestClient struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer

	mu    sync.Mutex
	lines []string

	closed    chan struct{} // Closed when the server ends the connection
	closeOnce sync.Once
}

// Dial connects to address and starts collecting output.
func Dial(address string) (*TestClient, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c := &TestClient{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
		closed: make(chan struct{}),
	}
	go c.readLines()
	return c, nil
}

// readLines collects output until the connection ends. Prompts have no
// newline, so a trailing partial line is kept when the server hangs up.
func (c *TestClient) readLines() {
	defer close(c.closed)
	for {
		line, err := c.reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			c.mu.Lock()
			c.lines = append(c.lines, line)
			c.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes one command followed by CRLF.
func (c *TestClient) Send(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.writer.WriteString(cmd + "\r\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Lines returns a copy of every line received so far.
func (c *TestClient) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Transcript returns the received lines joined by newlines.
func (c *TestClient) Transcript() string {
	return strings.Join(c.Lines(), "\n")
}

// Clear forgets the lines received so far.
func (c *TestClient) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Has reports whether any received line contains text.
func (c *TestClient) Has(text string) bool {
	for _, line := range c.Lines() {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}

// WaitFor waits until a received line contains text.
func (c *TestClient) WaitFor(text string, timeout time.Duration) bool {
	_, ok := c.WaitForAny([]string{text}, timeout)
	return ok
}

// WaitForAny waits until a received line contains one of texts and
// returns the text that matched.
func (c *TestClient) WaitForAny(texts []string, timeout time.Duration) (string, bool) {
	deadline := time.Now().Add(timeout)
	for {
		for _, line := range c.Lines() {
			for _, text := range texts {
				if strings.Contains(line, text) {
					return text, true
				}
			}
		}
		if time.Now().After(deadline) {
			return "", false
		}
		select {
		case <-c.closed:
			// One last look at what arrived before the hangup.
			deadline = time.Now()
		case <-time.After(20 * time.Millisecond):
		}
	}
}

// WaitClosed waits for the server to end the connection.
func (c *TestClient) WaitClosed(timeout time.Duration) bool {
	select {
	case <-c.closed:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Close ends the connection from the client side.
func (c *TestClient) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.conn.Close() })
	return err
}
