// Package session keeps short-lived, server-side interaction state (wizard
// progress, open verification prompts) keyed by an opaque id.
//
// Entries expire after an idle TTL. Values implementing Close() are closed
// when they are deleted or swept so their timers do not leak.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// ErrNotFound is returned when an id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type closer interface {
	Close()
}

type entry[T any] struct {
	value    T
	lastSeen atomic.Int64
}

// Config configures a Registry.
type Config struct {
	// Name labels log lines.
	Name  string
	TTL   time.Duration
	Clock clocker
	UUID  generator
}

// Registry stores values of type T by id.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]*entry[T]
	name  string
	ttl   time.Duration
	clock clocker
	uuid  generator
}

// New creates a Registry. A non-positive TTL defaults to 30 minutes.
func New[T any](cfg Config) *Registry[T] {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}

	return &Registry[T]{
		items: make(map[string]*entry[T]),
		name:  cfg.Name,
		ttl:   cfg.TTL,
		clock: cfg.Clock,
		uuid:  cfg.UUID,
	}
}

// Create stores v under a new id.
func (r *Registry[T]) Create(v T) string {
	id := r.uuid.Generate()
	e := &entry[T]{value: v}
	e.lastSeen.Store(r.clock.Now().UnixNano())

	r.mu.Lock()
	r.items[id] = e
	r.mu.Unlock()

	return id
}

// CreateWith stores the value built by fn for a new id and returns it. It is
// for values that need to know their own id.
func (r *Registry[T]) CreateWith(fn func(id string) T) T {
	id := r.uuid.Generate()
	v := fn(id)
	e := &entry[T]{value: v}
	e.lastSeen.Store(r.clock.Now().UnixNano())

	r.mu.Lock()
	r.items[id] = e
	r.mu.Unlock()

	return v
}

// Put stores v under id, closing any value it replaces.
func (r *Registry[T]) Put(id string, v T) {
	e := &entry[T]{value: v}
	e.lastSeen.Store(r.clock.Now().UnixNano())

	r.mu.Lock()
	old, ok := r.items[id]
	r.items[id] = e
	r.mu.Unlock()

	if ok {
		closeValue(old.value)
	}
}

// Get returns the value for id and refreshes its idle timer.
func (r *Registry[T]) Get(id string) (T, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	now := r.clock.Now()
	if !ok || r.expired(e, now) {
		var zero T
		return zero, ErrNotFound
	}

	e.lastSeen.Store(now.UnixNano())
	return e.value, nil
}

// Delete removes id and closes its value. It reports whether id existed.
func (r *Registry[T]) Delete(id string) bool {
	r.mu.Lock()
	e, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()

	if ok {
		closeValue(e.value)
	}

	return ok
}

// Len returns the number of stored entries, expired ones included.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Sweep removes idle entries and returns how many were evicted.
func (r *Registry[T]) Sweep() int {
	now := r.clock.Now()

	var evicted []T
	r.mu.Lock()
	for id, e := range r.items {
		if r.expired(e, now) {
			evicted = append(evicted, e.value)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, v := range evicted {
		closeValue(v)
	}

	return len(evicted)
}

// Run sweeps every interval until ctx is done, then closes every value.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				slog.DebugContext(ctx, "session sweep", "registry", r.name, "evicted", n)
			}
		}
	}
}

func (r *Registry[T]) closeAll() {
	r.mu.Lock()
	items := r.items
	r.items = make(map[string]*entry[T])
	r.mu.Unlock()

	for _, e := range items {
		closeValue(e.value)
	}
}

func (r *Registry[T]) expired(e *entry[T], now time.Time) bool {
	return now.Sub(time.Unix(0, e.lastSeen.Load())) > r.ttl
}

func closeValue[T any](v T) {
	if c, ok := any(v).(closer); ok {
		c.Close()
	}
}
