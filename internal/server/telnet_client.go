package server

import (
	"bufio"
	"net"
	"strings"
	"sync"
)

// Telnet protocol bytes.
const (
	telnetIAC  = 0xFF
	telnetSB   = 0xFA
	telnetSE   = 0xF0
	telnetWILL = 0xFB
	telnetDONT = 0xFE
)

// TelnetClient wraps a raw TCP connection for telnet-style communication.
type TelnetClient struct {
	conn    net.Conn
	scanner *bufio.Scanner
	writer  *bufio.Writer
	mu      sync.Mutex
}

// NewTelnetClient creates a new TelnetClient from a TCP connection.
func NewTelnetClient(conn net.Conn) *TelnetClient {
	return &TelnetClient{
		conn:    conn,
		scanner: bufio.NewScanner(conn),
		writer:  bufio.NewWriter(conn),
	}
}

// ReadLine reads a line with the CR and any telnet negotiation removed.
func (c *TelnetClient) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return stripTelnet(c.scanner.Bytes()), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", net.ErrClosed
}

// WriteLine writes message with bare newlines turned into CRLF.
func (c *TelnetClient) WriteLine(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	message = strings.ReplaceAll(message, "\r\n", "\n")
	if _, err := c.writer.WriteString(strings.ReplaceAll(message, "\n", "\r\n")); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *TelnetClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// stripTelnet drops IAC command sequences, subnegotiations and CRs.
func stripTelnet(b []byte) string {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '\r':
		case b[i] != telnetIAC:
			out = append(out, b[i])
		case i+1 < len(b) && b[i+1] == telnetIAC:
			out = append(out, telnetIAC)
			i++
		case i+1 < len(b) && b[i+1] == telnetSB:
			i += 2
			for i < len(b) && !(b[i] == telnetIAC && i+1 < len(b) && b[i+1] == telnetSE) {
				i++
			}
			i++
		case i+1 < len(b) && b[i+1] >= telnetWILL && b[i+1] <= telnetDONT:
			i += 2
		default:
			i++
		}
	}
	return string(out)
}
