package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// StubClock implements the server's Clock for tests.
type StubClock struct {
	mu            sync.Mutex
	RunningVal    bool
	ShutdownCalls int
	Err           error
}

func (c *StubClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.RunningVal
}

func (c *StubClock) Shutdown(ctx context.Context) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ShutdownCalls++
	return c.Err
}

// Calls returns how many times Shutdown ran.
func (c *StubClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ShutdownCalls
}

// StubHTTPServer implements httpServer for tests.
type StubHTTPServer struct {
	mu            sync.Mutex
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// Shutdowns returns how many times Shutdown ran.
func (s *StubHTTPServer) Shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ShutdownCalls
}

// ErrHTTPServer returns an error on ListenAndServe; Shutdown increments a counter.
type ErrHTTPServer struct {
	mu            sync.Mutex
	ShutdownCalls int
}

func (e *ErrHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *ErrHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ShutdownCalls++
	return nil
}

func (e *ErrHTTPServer) Addr() string {
	return ":0"
}

func (e *ErrHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}
