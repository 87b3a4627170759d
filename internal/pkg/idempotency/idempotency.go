// Package idempotency guards side effects keyed by a client supplied
// Idempotency-Key so a retried request does not run twice.
package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
	ErrMissingKey        = errors.New("idempotency key is required")
)

// State is the lifecycle of a guarded operation.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
	maxKeyLen           = 128
)

// Idempotency runs fn at most once per key.
type Idempotency interface {
	Exec(ctx context.Context, scope, key string, fn func(context.Context) error, opts ...Option) error
}

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress marker lives if the process
// dies mid operation.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long the final state is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// Tracker keeps operation state in Redis.
type Tracker struct {
	client redis.UniversalClient
	prefix string
}

// New creates a Tracker.
func New(client redis.UniversalClient) *Tracker {
	return &Tracker{client: client, prefix: "idempotency:"}
}

func (s *Tracker) key(scope, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > maxKeyLen || strings.ContainsAny(key, "\r\n") {
		return "", ErrMissingKey
	}
	return s.prefix + scope + ":" + key, nil
}

func (s *Tracker) acquire(ctx context.Context, fk string, lock time.Duration) (State, error) {
	acquired, err := s.client.SetNX(ctx, fk, string(StateInProgress), lock).Result()
	if err != nil {
		return "", err
	}
	if acquired {
		return StateNone, nil
	}

	result, err := s.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.acquire(ctx, fk, lock)
	}
	if err != nil {
		return "", err
	}

	switch State(result) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(result), nil
	default:
		return "", ErrInvalidState
	}
}

// Exec runs fn unless the key was already used within scope.
func (s *Tracker) Exec(ctx context.Context, scope, key string, fn func(context.Context) error, opts ...Option) error {
	o := &execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	fk, err := s.key(scope, key)
	if err != nil {
		return err
	}

	state, err := s.acquire(ctx, fk, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := s.client.Set(ctx, fk, string(StateFailed), o.stateTTL).Err(); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	return s.client.Set(ctx, fk, string(StateCompleted), o.stateTTL).Err()
}
