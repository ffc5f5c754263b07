// Package server exposes game sessions over telnet and WebSocket. Every
// connection plays its own independent game.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/tenebrae/internal/config"
	"github.com/lawnchairsociety/tenebrae/internal/logger"
	"github.com/lawnchairsociety/tenebrae/internal/session"
)

const tooManyConnections = "Too many connections. Please try again later."

// Server accepts network players and runs one menu session per connection.
type Server struct {
	cfg     config.ServerConfig
	opts    session.Options
	limiter *ConnLimiter

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	listeners []net.Listener
	httpSrv   *http.Server
	clients   map[Client]struct{}

	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// New creates a server. opts is copied for every session with the transport
// and remote address filled in.
func New(cfg config.ServerConfig, opts session.Options) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:     cfg,
		opts:    opts,
		limiter: NewConnLimiter(cfg.Connections),
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[Client]struct{}),
	}
}

// ListenAndServe listens on the configured telnet and WebSocket addresses
// and blocks until ctx is done or a listener fails. The server is shut down
// before it returns.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 2)

	if s.cfg.TelnetAddr != "" {
		ln, err := net.Listen("tcp", s.cfg.TelnetAddr)
		if err != nil {
			s.Shutdown()
			return fmt.Errorf("failed to start telnet listener: %w", err)
		}
		logger.Info("Telnet server listening", "address", ln.Addr().String())
		go func() { errCh <- s.ServeTelnet(ln) }()
	}

	if s.cfg.WebSocketAddr != "" {
		ln, err := net.Listen("tcp", s.cfg.WebSocketAddr)
		if err != nil {
			s.Shutdown()
			return fmt.Errorf("failed to start websocket listener: %w", err)
		}
		logger.Info("WebSocket server listening", "address", ln.Addr().String())
		go func() { errCh <- s.ServeWebSocket(ln) }()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}
	s.Shutdown()
	return err
}

// ServeTelnet accepts telnet connections on ln until the server shuts down.
func (s *Server) ServeTelnet(ln net.Listener) error {
	if !s.track(ln) {
		ln.Close()
		return nil
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			logger.Error("Error accepting connection", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// ServeWebSocket serves Handler on ln until the server shuts down.
func (s *Server) ServeWebSocket(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	if s.ctx.Err() != nil {
		ln.Close()
		return nil
	}

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler returns the HTTP handler that upgrades /ws requests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// ActiveSessions returns the number of connected players.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleConnection(conn net.Conn) {
	remoteAddr := conn.RemoteAddr().String()
	ip := extractIP(remoteAddr)

	if !s.limiter.TryAcquire(ip) {
		logger.Warning("Connection rejected - limit exceeded",
			"remote_addr", remoteAddr,
			"ip", ip)
		conn.Write([]byte(tooManyConnections + "\r\n"))
		conn.Close()
		return
	}
	defer s.limiter.Release(ip)

	client := NewTelnetClient(conn)
	defer client.Close()
	s.handleClient(client, "telnet")
}

func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r)

	if !s.limiter.TryAcquire(clientIP) {
		logger.Warning("WebSocket connection rejected - limit exceeded",
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP)
		http.Error(w, tooManyConnections, http.StatusTooManyRequests)
		return
	}
	defer s.limiter.Release(clientIP)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	client := NewWebSocketClient(wsConn, s.cfg.WebSocket.MaxMessageSize)
	defer client.Close()
	s.handleClient(client, "websocket")
}

// handleClient runs the menu for one connection of either transport.
func (s *Server) handleClient(client Client, transport string) {
	if !s.register(client) {
		return
	}
	defer s.unregister(client)

	logger.Info("Client connected", "remote_addr", client.RemoteAddr(), "transport", transport)

	opts := s.opts
	opts.Transport = transport
	opts.RemoteAddr = client.RemoteAddr()

	if err := session.RunMenu(s.ctx, newFloodClient(client, s.cfg.Flood), opts); err != nil {
		logger.Info("Session closed with error", "remote_addr", client.RemoteAddr(), "error", err)
	}

	logger.Info("Client disconnected", "remote_addr", client.RemoteAddr())
}

// track records a listener for Shutdown. It reports false once shutdown
// has begun.
func (s *Server) track(ln net.Listener) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.listeners = append(s.listeners, ln)
	return true
}

// register tracks a live client and refuses once shutdown has begun.
func (s *Server) register(client Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.clients[client] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) unregister(client Client) {
	s.mu.Lock()
	delete(s.clients, client)
	s.mu.Unlock()
	s.wg.Done()
}

// getRealIP extracts the real client IP from an HTTP request.
// It checks X-Forwarded-For header first (for reverse proxy setups),
// then falls back to the direct remote address.
func getRealIP(r *http.Request) string {
	// "client, proxy1, proxy2": the first entry is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if clientIP := strings.TrimSpace(first); clientIP != "" {
			return clientIP
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return extractIP(r.RemoteAddr)
}

// Shutdown stops accepting connections, disconnects every player and waits
// for their sessions to be recorded. It is safe to call more than once.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		s.cancel()
		listeners := s.listeners
		httpSrv := s.httpSrv
		clients := make([]Client, 0, len(s.clients))
		for c := range s.clients {
			clients = append(clients, c)
		}
		s.mu.Unlock()

		for _, ln := range listeners {
			ln.Close()
		}
		if httpSrv != nil {
			// Hijacked WebSocket connections are not tracked by the HTTP server.
			httpSrv.Close()
		}
		for _, c := range clients {
			c.Close()
		}

		s.wg.Wait()
		logger.Info("Server shutdown complete", "disconnected", len(clients))
	})
}
