package session

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// Client is the line channel a session talks through.
type Client interface {
	// ReadLine blocks until a complete line is received (without newline).
	ReadLine() (string, error)

	// WriteLine sends text to the player exactly as given.
	WriteLine(message string) error
}

// StreamClient adapts a reader and writer pair, such as stdin and stdout.
type StreamClient struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
	mu      sync.Mutex
}

// NewStreamClient creates a client over r and w.
func NewStreamClient(r io.Reader, w io.Writer) *StreamClient {
	return &StreamClient{
		scanner: bufio.NewScanner(r),
		writer:  bufio.NewWriter(w),
	}
}

// ReadLine returns the next line, or io.EOF once input is exhausted.
func (c *StreamClient) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return strings.TrimRight(c.scanner.Text(), "\r"), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// WriteLine writes message and flushes.
func (c *StreamClient) WriteLine(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.writer.WriteString(message); err != nil {
		return err
	}
	return c.writer.Flush()
}
