package mobli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/mobli/pkg/idx"
	"github.com/aussiebroadwan/mobli/pkg/slogx"
)

// Executor runs a request synchronously. *Client implements it.
type Executor interface {
	Execute(ctx context.Context, req Request) (string, error)
}

// DispatcherConfig sizes the asynchronous request pool.
type DispatcherConfig struct {
	// Workers is the number of requests executed concurrently (default: 4)
	Workers int

	// QueueSize is the number of requests waiting for a worker (default: 64)
	QueueSize int

	// RateLimit caps requests per second across all workers (default: unlimited)
	RateLimit rate.Limit

	// Burst is the limiter bucket size, only used with RateLimit (default: 1)
	Burst int
}

// task is a queued request together with its completion.
type task struct {
	id       idx.ID
	ctx      context.Context
	req      Request
	state    any
	listener Listener
}

// Dispatcher runs requests on a fixed pool of workers and reports each outcome
// to the listener supplied with it. Completions are not ordered.
type Dispatcher struct {
	exec    Executor
	logger  *slog.Logger
	limiter *rate.Limiter

	mu     sync.RWMutex
	closed bool
	queue  chan task
	wg     sync.WaitGroup
}

// NewDispatcher starts the worker pool. Call Close to stop it.
func NewDispatcher(exec Executor, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		exec:   exec,
		logger: logger,
		queue:  make(chan task, cfg.QueueSize),
	}
	if cfg.RateLimit > 0 && cfg.RateLimit != rate.Inf {
		d.limiter = rate.NewLimiter(cfg.RateLimit, cfg.Burst)
	}

	d.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go d.run()
	}

	return d
}

// Dispatch queues req and returns immediately. The listener is called exactly
// once with a Result carrying state. When the request cannot be queued the
// listener still fires, on its own goroutine, with a *TransportError.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, state any, listener Listener) {
	t := task{
		id:       idx.New(),
		ctx:      ctx,
		req:      req,
		state:    state,
		listener: listener,
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		go d.complete(t, "", &TransportError{Err: ErrDispatcherClosed})
		return
	}

	select {
	case d.queue <- t:
	default:
		d.logger.Warn("dispatch queue full", "dispatch_id", t.id, "path", req.Path)
		go d.complete(t, "", &TransportError{Err: ErrDispatcherBusy})
	}
}

// Close stops accepting requests, lets queued requests finish and waits for
// the workers to exit. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// run is the worker loop.
func (d *Dispatcher) run() {
	defer d.wg.Done()

	for t := range d.queue {
		d.execute(t)
	}
}

func (d *Dispatcher) execute(t task) {
	logger := slogx.FromContext(slogx.Ensure(t.ctx, d.logger)).With("dispatch_id", t.id)
	ctx := slogx.WithContext(t.ctx, logger)

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			d.complete(t, "", &TransportError{Err: fmt.Errorf("rate limit wait: %w", err)})
			return
		}
	}

	logger.Debug("dispatching request", "path", t.req.Path, "queued_for", time.Since(t.id.Time()))

	body, err := d.exec.Execute(ctx, t.req)
	if err != nil {
		logger.Debug("dispatched request failed", "path", t.req.Path, "error", err)
	}
	d.complete(t, body, err)
}

// complete hands the outcome to the listener, keeping the worker alive if the
// listener panics.
func (d *Dispatcher) complete(t task, body string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("listener panicked", "dispatch_id", t.id, "panic", r)
		}
	}()

	if t.listener == nil {
		return
	}
	t.listener(Result{State: t.state, Body: body, Err: err})
}

// RequestAsync runs req on the client's dispatcher.
func (c *Client) RequestAsync(ctx context.Context, req Request, state any, listener Listener) {
	c.dispatcher.Dispatch(ctx, req, state, listener)
}
