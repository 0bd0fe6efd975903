package mobli

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sync"
	"testing"
	"time"
)

// transportCall records one Open invocation.
type transportCall struct {
	URL    string
	Method string
	Params Params
}

// stubTransport answers Open with respond and records every call.
type stubTransport struct {
	mu      sync.Mutex
	calls   []transportCall
	respond func(url, method string, params Params) (string, error)
}

func (s *stubTransport) Open(_ context.Context, url, method string, params Params) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, transportCall{URL: url, Method: method, Params: maps.Clone(params)})
	respond := s.respond
	s.mu.Unlock()

	if respond == nil {
		return "", nil
	}
	return respond(url, method, params)
}

func (s *stubTransport) Calls() []transportCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]transportCall(nil), s.calls...)
}

// fakeClock is a settable time source for sessions.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient builds a client around transport with quiet logging.
func newTestClient(t *testing.T, transport Transport, cfg ClientConfig) *Client {
	t.Helper()

	cfg.Transport = transport
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	client, err := NewClient("abc", "xyz", cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(client.Close)

	return client
}

// waitResult waits for a result delivered on ch.
func waitResult[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case res := <-ch:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
	}

	var zero T
	return zero
}
