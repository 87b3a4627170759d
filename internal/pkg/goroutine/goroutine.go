// Package goroutine runs background work (consumers, sweepers) with a
// concurrency cap and panic recovery, and lets shutdown wait for it.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"go.uber.org/atomic"

	"github.com/shandysiswandi/talentflow/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager receives a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrPanic is collected when a task panics.
var ErrPanic = errors.New("goroutine: task panicked")

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Manager runs tasks in goroutines with a configurable concurrency limit and
// collects their errors.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
	state  sync.RWMutex
	closed bool
	active atomic.Int32
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f. It returns false when the manager is closed or full.
func (g *Manager) Go(ctx context.Context, name string, f Task) bool {
	if g == nil {
		return false
	}

	g.state.RLock()
	defer g.state.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping task", "task", name)
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, skipping task", "task", name)
		return false
	}

	g.active.Inc()
	g.wg.Go(func() {
		defer func() {
			g.active.Dec()
			<-g.sema
		}()

		if err := g.run(ctx, name, f); err != nil {
			g.collect(err)
		}
	})

	return true
}

func (g *Manager) run(ctx context.Context, name string, f Task) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "task", name, "because", rvr, "stack", stacktrace.Capture())
			err = ErrPanic
		}
	}()

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "goroutine canceled before start", "task", name, "because", ctx.Err())
		return nil
	}

	if err := f(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "goroutine finished with error", "task", name, "error", err)
		return err
	}

	return nil
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs = append(g.errs, err)
}

// Active returns the number of tasks currently running.
func (g *Manager) Active() int {
	return int(g.active.Load())
}

// Wait stops accepting tasks, blocks until the running ones return and joins
// their errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.state.Lock()
	g.closed = true
	g.state.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
