package server

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/tenebrae/internal/antispam"
	"github.com/lawnchairsociety/tenebrae/internal/config"
	"github.com/lawnchairsociety/tenebrae/internal/content"
	"github.com/lawnchairsociety/tenebrae/internal/database"
	"github.com/lawnchairsociety/tenebrae/internal/render"
	"github.com/lawnchairsociety/tenebrae/internal/session"
	"github.com/lawnchairsociety/tenebrae/internal/testclient"
)

type memRecorder struct {
	mu      sync.Mutex
	records []database.SessionRecord
}

func (m *memRecorder) RecordSession(_ context.Context, rec database.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *memRecorder) snapshot() []database.SessionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]database.SessionRecord(nil), m.records...)
}

func newTestServer(t *testing.T, cfg config.ServerConfig) (*Server, *memRecorder) {
	t.Helper()
	b, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	rec := &memRecorder{}
	s := New(cfg, session.Options{
		Content:  b,
		Renderer: render.New(0, false),
		Recorder: rec,
	})
	t.Cleanup(s.Shutdown)
	return s, rec
}

// startTelnet serves telnet on a loopback port and returns its address.
func startTelnet(t *testing.T, s *Server) (string, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- s.ServeTelnet(ln) }()
	return ln.Addr().String(), done
}

func dialTelnet(t *testing.T, addr string) (net.Conn, *bufio.Reader) {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	t.Cleanup(func() { conn.Close() })
	return conn, bufio.NewReader(conn)
}

// readUntil reads until marker appears and returns everything read.
func readUntil(t *testing.T, r *bufio.Reader, marker string) string {
	t.Helper()
	var sb strings.Builder
	for !strings.Contains(sb.String(), marker) {
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("waiting for %q: %v (got %q)", marker, err, sb.String())
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

func TestServer_TelnetQuit(t *testing.T) {
	s, rec := newTestServer(t, config.ServerConfig{})
	addr, _ := startTelnet(t, s)

	conn, r := dialTelnet(t, addr)
	menu := readUntil(t, r, "ACTION: ")
	if !strings.Contains(menu, "TENEBRAE") || !strings.Contains(menu, "\r\n") {
		t.Errorf("menu = %q, want CRLF banner with title", menu)
	}

	conn.Write([]byte("2\r\n"))
	rest, _ := io.ReadAll(r)
	if !strings.Contains(string(rest), "Quitting...") {
		t.Errorf("after quit got %q", rest)
	}
	if n := len(rec.snapshot()); n != 0 {
		t.Errorf("quitting from the menu recorded %d sessions", n)
	}
}

func TestServer_TelnetDisconnectRecordsSession(t *testing.T) {
	s, rec := newTestServer(t, config.ServerConfig{})
	addr, _ := startTelnet(t, s)

	conn, r := dialTelnet(t, addr)
	readUntil(t, r, "ACTION: ")
	conn.Write([]byte("1\r\n"))
	readUntil(t, r, "ACTION: ")
	conn.Write([]byte("search\r\n"))
	readUntil(t, r, "ACTION: ")
	conn.Close()

	deadline := time.Now().Add(3 * time.Second)
	for len(rec.snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	records := rec.snapshot()
	if len(records) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(records))
	}
	got := records[0]
	if got.Transport != "telnet" || got.Outcome != "disconnected" {
		t.Errorf("record = %+v, want telnet/disconnected", got)
	}
	if got.Turns != 1 || got.FinalRoom != "start" {
		t.Errorf("turns = %d room = %q, want 1 in start", got.Turns, got.FinalRoom)
	}
	if !strings.HasPrefix(got.RemoteAddr, "127.0.0.1:") {
		t.Errorf("RemoteAddr = %q", got.RemoteAddr)
	}
}

func TestServer_TelnetConnectionLimit(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{
		Connections: config.ConnectionsConfig{MaxTotal: 1},
	})
	addr, _ := startTelnet(t, s)

	_, r1 := dialTelnet(t, addr)
	readUntil(t, r1, "ACTION: ")

	_, r2 := dialTelnet(t, addr)
	data, _ := io.ReadAll(r2)
	if !strings.Contains(string(data), tooManyConnections) {
		t.Errorf("second connection got %q", data)
	}
}

func TestServer_ShutdownDisconnectsPlayers(t *testing.T) {
	s, rec := newTestServer(t, config.ServerConfig{})
	addr, served := startTelnet(t, s)

	conn, r := dialTelnet(t, addr)
	readUntil(t, r, "ACTION: ")
	conn.Write([]byte("1\r\n"))
	readUntil(t, r, "ACTION: ")

	if n := s.ActiveSessions(); n != 1 {
		t.Errorf("ActiveSessions() = %d, want 1", n)
	}

	s.Shutdown()
	s.Shutdown()

	if n := s.ActiveSessions(); n != 0 {
		t.Errorf("ActiveSessions() after shutdown = %d, want 0", n)
	}
	records := rec.snapshot()
	if len(records) != 1 || records[0].Outcome != "disconnected" {
		t.Errorf("records = %+v, want one disconnected session", records)
	}

	select {
	case err := <-served:
		if err != nil {
			t.Errorf("ServeTelnet() = %v, want nil after shutdown", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("ServeTelnet did not return after shutdown")
	}

	if _, err := io.ReadAll(r); err != nil {
		t.Errorf("reading closed connection: %v", err)
	}
}

func TestServer_ConcurrentShutdown(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})
	startTelnet(t, s)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Shutdown()
		}()
	}
	wg.Wait()
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

// readMessageUntil reads WebSocket messages until one contains marker.
func readMessageUntil(t *testing.T, conn *websocket.Conn, marker string) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", marker, err)
		}
		if strings.Contains(string(msg), marker) {
			return
		}
	}
}

func TestServer_WebSocketPlayAndQuit(t *testing.T) {
	s, rec := newTestServer(t, config.ServerConfig{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readMessageUntil(t, conn, "ACTION: ")
	conn.WriteMessage(websocket.TextMessage, []byte("1"))
	readMessageUntil(t, conn, "ACTION: ")
	conn.WriteMessage(websocket.TextMessage, []byte("quit"))
	readMessageUntil(t, conn, "ACTION: ")
	conn.WriteMessage(websocket.TextMessage, []byte("2"))
	readMessageUntil(t, conn, "Quitting...")

	records := rec.snapshot()
	if len(records) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(records))
	}
	if records[0].Transport != "websocket" || records[0].Outcome != "quit" {
		t.Errorf("record = %+v, want websocket/quit", records[0])
	}
}

func TestServer_WebSocketOrigin(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{
		WebSocket: config.WebSocketConfig{AllowedOrigins: []string{"https://tenebrae.example"}},
	})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err == nil {
		t.Fatal("dial with a foreign origin should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}

	header.Set("Origin", "https://tenebrae.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("dial with allowed origin: %v", err)
	}
	conn.Close()
}

func TestServer_WebSocketConnectionLimit(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{
		Connections: config.ConnectionsConfig{MaxPerIP: 1},
	})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	first, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("first dial: %v", err)
	}
	defer first.Close()
	readMessageUntil(t, first, "ACTION: ")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err == nil {
		t.Fatal("second dial from the same IP should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("response = %v, want 429", resp)
	}
}

func TestServer_ListenAndServe(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{
		TelnetAddr:    "127.0.0.1:0",
		WebSocketAddr: "127.0.0.1:0",
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}

func TestServer_ListenAndServe_BadAddress(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{TelnetAddr: "127.0.0.1:-1"})

	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Error("ListenAndServe() should fail for an invalid address")
	}
}

func TestServer_TelnetPlaythrough(t *testing.T) {
	s, rec := newTestServer(t, config.ServerConfig{})
	addr, _ := startTelnet(t, s)

	c, err := testclient.Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	steps := []struct {
		cmd  string
		want string
	}{
		{"1", "You wake up in dimly lit room..."},
		{"south", ""},
		{"search", "You found a cell key."},
		{"take", "cell key has been added to your inventory."},
		{"north", ""},
		{"north", "You face the cell door..."},
		{"open", "You use the cell key to unlock the door."},
		{"north", ""},
		{"quit", ""},
		{"2", "Quitting..."},
	}

	if !c.WaitFor("Enter [1] or [2]", 3*time.Second) {
		t.Fatalf("no menu:\n%s", c.Transcript())
	}
	for _, step := range steps {
		if err := c.Send(step.cmd); err != nil {
			t.Fatalf("send %q: %v", step.cmd, err)
		}
		if step.want != "" && !c.WaitFor(step.want, 3*time.Second) {
			t.Fatalf("after %q, never saw %q:\n%s", step.cmd, step.want, c.Transcript())
		}
	}

	if !c.WaitClosed(3 * time.Second) {
		t.Fatal("server did not close the connection after quitting")
	}

	records := rec.snapshot()
	if len(records) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(records))
	}
	if records[0].Outcome != "quit" || records[0].FinalRoom != "prison_hallway_1" {
		t.Errorf("record = %+v, want quit in prison_hallway_1", records[0])
	}
	if records[0].Inventory != "cell key" {
		t.Errorf("inventory = %q, want cell key", records[0].Inventory)
	}
}

func TestServer_FloodLimit(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{
		Flood: antispam.Config{Enabled: true, MaxCommands: 3, Window: time.Hour},
	})
	addr, _ := startTelnet(t, s)

	c, err := testclient.Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.WaitFor("Enter [1] or [2]", 3*time.Second)
	// The menu choice counts as the first command.
	for _, cmd := range []string{"1", "search", "inventory", "search"} {
		c.Send(cmd)
	}

	if !c.WaitFor("You're sending commands too quickly.", 3*time.Second) {
		t.Fatalf("flood limit never triggered:\n%s", c.Transcript())
	}
	if s.ActiveSessions() != 1 {
		t.Error("flooding should not disconnect the player")
	}
}

func TestServer_Scenarios(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{})
	addr, _ := startTelnet(t, s)

	for _, sc := range testclient.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			if r := sc.Run(addr, 3*time.Second, nil); !r.Passed {
				t.Error(r.Message)
			}
		})
	}
}
