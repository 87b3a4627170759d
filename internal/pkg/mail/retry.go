package mail

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retrying retries transient delivery failures of the wrapped Mail with a
// Fibonacci backoff.
type Retrying struct {
	next       Mail
	base       time.Duration
	maxRetries uint64
}

// NewRetrying wraps next. maxRetries of zero sends once.
func NewRetrying(next Mail, base time.Duration, maxRetries uint64) *Retrying {
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	return &Retrying{next: next, base: base, maxRetries: maxRetries}
}

// Send implements Mail. Validation errors are not retried.
func (r *Retrying) Send(ctx context.Context, msg Message) error {
	b := retry.WithMaxRetries(r.maxRetries, retry.NewFibonacci(r.base))

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := r.next.Send(ctx, msg)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrSMTPNoRecipients), errors.Is(err, ErrSMTPNoSender):
			return err
		default:
			slog.WarnContext(ctx, "mail delivery failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
	})
}

// Close implements io.Closer.
func (r *Retrying) Close() error {
	return r.next.Close()
}
