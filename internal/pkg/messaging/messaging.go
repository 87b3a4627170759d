package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/pkg/stacktrace"
)

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID = "cID"

var (
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("messaging: client is closed")
	// ErrTopicRequired is returned when the topic is empty.
	ErrTopicRequired = errors.New("messaging: topic is required")
	// ErrGroupRequired is returned when a consumer has no group.
	ErrGroupRequired = errors.New("messaging: consumer group is required")
	// ErrHandlerRequired is returned when Consume gets a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
)

// Message is a broker independent event.
type Message struct {
	Topic   string
	Key     []byte
	Body    []byte
	Headers map[string]string
}

// Header returns the value of header k, or "".
func (m Message) Header(k string) string {
	if m.Headers == nil {
		return ""
	}
	return m.Headers[k]
}

// Handler processes a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Consumer blocks delivering messages of topic to handler until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Messaging is a broker client.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

// ConsumeOption configures Consume.
type ConsumeOption func(*consumeOptions)

type consumeOptions struct {
	group       string
	concurrency int
	maxInFlight int
}

// WithGroup names the competing consumer group. It maps to the Kafka group id,
// the NSQ channel, the NATS queue group, the Pub/Sub subscription and the
// RabbitMQ queue.
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithConcurrency sets how many handlers run in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithMaxInFlight limits unacknowledged messages held by the client.
func WithMaxInFlight(n int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = n }
}

func newConsumeOptions(topic string, handler Handler, opts ...ConsumeOption) (consumeOptions, error) {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}

	co.concurrency = max(co.concurrency, 1)
	co.maxInFlight = max(co.maxInFlight, co.concurrency)

	switch {
	case topic == "":
		return co, ErrTopicRequired
	case handler == nil:
		return co, ErrHandlerRequired
	case co.group == "":
		return co, ErrGroupRequired
	}

	return co, nil
}

// dispatch runs handler and turns a panic into an error so the message is
// redelivered instead of crashing the consumer.
func dispatch(ctx context.Context, driver string, handler Handler, msg Message) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "topic", msg.Topic, "panic", rvr, "stack", stacktrace.Capture())
			err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
		}
	}()

	return handler(ctx, msg)
}
