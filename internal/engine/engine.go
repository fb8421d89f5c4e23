package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sadewadee/phpcodings/internal/protocol"
	"github.com/sadewadee/phpcodings/internal/scenario"
)

// ErrNotStarted is returned when Execute is called before Startup.
var ErrNotStarted = errors.New("engine not started")

// Engine executes scenarios and hands their output back as protocol frames.
type Engine struct {
	registry *scenario.Registry
	logger   *slog.Logger

	mu      sync.RWMutex
	started bool

	jobs      atomic.Int64
	failures  atomic.Int64
	lastRunAt atomic.Int64 // unix nanos
}

// New creates an engine over the given registry.
func New(registry *scenario.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// Startup marks the engine ready. Calling it twice is a no-op.
func (e *Engine) Startup() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}
	e.started = true
	e.logger.Debug("engine started", "scenarios", e.registry.Names())
	return nil
}

// Shutdown stops the engine. Calling it twice is a no-op.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return nil
	}
	e.started = false
	e.logger.Debug("engine stopped", "jobs", e.jobs.Load())
	return nil
}

// Execute runs the scenario named in a RUN frame. Scenario failures come
// back as ERROR frames; the returned error is reserved for malformed
// requests and a stopped engine.
func (e *Engine) Execute(ctx context.Context, req *protocol.Frame) (*protocol.Frame, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.started {
		return nil, ErrNotStarted
	}

	run, err := protocol.DecodeRun(req)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With("scenario", run.Scenario, "run_id", run.RunID)

	s, err := e.registry.Lookup(run.Scenario)
	if err != nil {
		e.failures.Add(1)
		logger.Warn("scenario lookup failed", "error", err)
		return protocol.NewErrorFrame(err.Error()), nil
	}

	// Fresh buffer per run keeps runs from sharing state.
	var out bytes.Buffer
	start := time.Now()
	runErr := s.Run(ctx, &out)

	e.jobs.Add(1)
	e.lastRunAt.Store(time.Now().UnixNano())

	if runErr != nil {
		e.failures.Add(1)
		logger.Error("scenario failed", "error", runErr)
		return protocol.NewErrorFrame(runErr.Error()), nil
	}

	logger.Debug("scenario finished", "bytes", out.Len(), "duration", time.Since(start))

	return protocol.EncodeOutput(&protocol.OutputHeader{
		Scenario: run.Scenario,
		RunID:    run.RunID,
		Status:   protocol.StatusOK,
	}, out.Bytes())
}

// Result is a decoded scenario run.
type Result struct {
	Scenario string
	RunID    string
	Output   []byte
}

// Run executes one scenario by name. The request and response both pass
// through the wire codec, the same path a remote caller would take.
func (e *Engine) Run(ctx context.Context, name string) (*Result, error) {
	req, err := protocol.EncodeRun(&protocol.RunHeader{
		Scenario: name,
		RunID:    uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	var wire bytes.Buffer
	if err := protocol.WriteFrame(&wire, req); err != nil {
		return nil, err
	}
	inbound, err := protocol.ReadFrame(&wire)
	if err != nil {
		return nil, err
	}

	resp, err := e.Execute(ctx, inbound)
	if err != nil {
		return nil, err
	}

	wire.Reset()
	if err := protocol.WriteFrame(&wire, resp); err != nil {
		return nil, err
	}
	frame, err := protocol.ReadFrame(&wire)
	if err != nil {
		return nil, err
	}

	if frame.Type == protocol.TypeError {
		return nil, fmt.Errorf("running %s: %s", name, frame.Payload)
	}

	hdr, output, err := protocol.DecodeOutput(frame)
	if err != nil {
		return nil, err
	}
	return &Result{Scenario: hdr.Scenario, RunID: hdr.RunID, Output: output}, nil
}

// Ping answers a PING frame with a PONG.
func (e *Engine) Ping(req *protocol.Frame) (*protocol.Frame, error) {
	if req.Type != protocol.TypePing {
		return nil, fmt.Errorf("expected PING frame, got type 0x%02x", req.Type)
	}
	return protocol.NewPongFrame(), nil
}

// Stats returns engine statistics.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	started := e.started
	e.mu.RUnlock()

	var last time.Time
	if ns := e.lastRunAt.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return Stats{
		Started:   started,
		Jobs:      e.jobs.Load(),
		Failures:  e.failures.Load(),
		LastRunAt: last,
	}
}

// Stats contains engine statistics.
type Stats struct {
	Started   bool
	Jobs      int64
	Failures  int64
	LastRunAt time.Time
}
