// Package server wraps the request processor in a TCP accept loop: one
// goroutine per connection, one request per connection.
package server

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rtreacy87/http-server/internal/request"
	"github.com/rtreacy87/http-server/internal/response"
	"github.com/rtreacy87/http-server/internal/router"
)

type Server struct {
	cfg        Config
	router     *router.Router
	middleware []Middleware
	handler    router.Handler
	log        zerolog.Logger
	metrics    *Metrics

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
}

func New(cfg Config, r *router.Router, log zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg.withDefaults(),
		router:  r,
		log:     log,
		metrics: NewMetrics(),
	}
}

// Use appends a middleware. Must be called before serving starts.
func (s *Server) Use(m Middleware) {
	s.middleware = append(s.middleware, m)
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe binds the configured address and serves until Close.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections from listener until Close. Route registration
// and middleware setup must be complete before Serve is called; the
// dispatch chain is frozen here and shared read-only by all connections.
// If the server was already closed, Serve closes the listener and returns
// without accepting.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.handler = s.buildHandler()
	s.log.Info().Str("addr", listener.Addr().String()).Msg("server listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			s.log.Error().Err(err).Msg("accept failed")
			continue
		}

		go s.serveConn(conn)
	}
}

// Addr returns the bound address, or nil before Serve has taken a
// listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops the accept loop. In-flight connections finish on their own.
// Close may run concurrently with, or before, Serve: a Serve that has not
// yet taken a listener will notice the closed state and return instead of
// accepting.
func (s *Server) Close() error {
	s.closed.Store(true)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// buildHandler assembles the dispatch chain: middleware around the method
// gate around the route table. Only GET reaches the router; anything else
// is answered 405 without invoking a registered handler.
func (s *Server) buildHandler() router.Handler {
	var h router.Handler = router.HandlerFunc(func(req *request.Request) *response.Response {
		if req.Method != "GET" {
			return response.Text(response.StatusMethodNotAllowed, "Method not allowed")
		}
		return s.router.Dispatch(req)
	})

	for i := len(s.middleware) - 1; i >= 0; i-- {
		h = s.middleware[i](h)
	}
	return h
}
