// Package server binds the listener and runs the serve loop for an application.
package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"backend-service/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrAlreadyStarted is returned when Start is called on a running server
var ErrAlreadyStarted = errors.New("server already started")

// Server serves a Fiber application on a single listener
type Server struct {
	app  *fiber.App
	addr string

	mu       sync.Mutex
	listener net.Listener
	errCh    chan error
}

// New wraps app; nothing is bound until Start
func New(app *fiber.App, addr string) *Server {
	return &Server{
		app:   app,
		addr:  addr,
		errCh: make(chan error, 1),
	}
}

// Start binds the listener and serves from a different goroutine.
// Bind errors are returned directly; serve errors arrive on Errors.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrAlreadyStarted
	}

	startupStart := time.Now()
	utils.LogDebug("Binding HTTP listener", "addr", s.addr)
	ln, err := Bind(s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	utils.LogInfo("HTTP server listening", "addr", ln.Addr().String(), "startup_time", time.Since(startupStart))

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.errCh <- err
		}
		close(s.errCh)
	}()
	return nil
}

// Errors delivers a fatal serve error, or is closed once serving stops cleanly
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Listening reports whether Start has bound the listener
func (s *Server) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}

// Shutdown stops accepting connections and waits up to timeout for in-flight
// requests to finish
func (s *Server) Shutdown(timeout time.Duration) error {
	if !s.Listening() {
		return nil
	}
	return s.app.ShutdownWithTimeout(timeout)
}
