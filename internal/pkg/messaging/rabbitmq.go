package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"
)

const defaultRabbitExchange = "talentflow.events"

var errRabbitDial = errors.New("messaging: rabbitmq dial")

// RabbitMQConfig configures the RabbitMQ driver.
type RabbitMQConfig struct {
	URL      string
	Exchange string
	// MaxRetries bounds reconnect attempts per outage.
	MaxRetries uint64
}

// RabbitMQ publishes to a durable topic exchange with the topic as routing
// key. Each consumer group owns a durable queue bound to the topic. Lost
// connections are re-dialed with exponential backoff.
type RabbitMQ struct {
	cfg RabbitMQConfig

	mu     sync.Mutex
	conn   *amqp.Connection
	pubCh  *amqp.Channel
	closed bool
}

// NewRabbitMQ dials the broker and declares the exchange.
func NewRabbitMQ(ctx context.Context, cfg RabbitMQConfig) (*RabbitMQ, error) {
	if cfg.URL == "" {
		return nil, errors.New("messaging: rabbitmq url is required")
	}
	if cfg.Exchange == "" {
		cfg.Exchange = defaultRabbitExchange
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}

	r := &RabbitMQ{cfg: cfg}
	if _, err := r.connection(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *RabbitMQ) backoff() retry.Backoff {
	b := retry.NewExponential(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	return retry.WithMaxRetries(r.cfg.MaxRetries, b)
}

// connection returns a live connection, re-dialing when needed.
func (r *RabbitMQ) connection(ctx context.Context) (*amqp.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if r.conn != nil && !r.conn.IsClosed() {
		return r.conn, nil
	}

	var conn *amqp.Connection
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		c, err := amqp.Dial(r.cfg.URL)
		if err != nil {
			slog.WarnContext(ctx, "rabbitmq dial failed, retrying", "error", err)
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRabbitDial, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("messaging: rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(r.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("messaging: rabbitmq exchange: %w", err)
	}

	r.conn, r.pubCh = conn, ch
	return conn, nil
}

// Publish implements Publisher.
func (r *RabbitMQ) Publish(ctx context.Context, msg Message) error {
	if msg.Topic == "" {
		return ErrTopicRequired
	}

	if _, err := r.connection(ctx); err != nil {
		return err
	}

	headers := make(amqp.Table, len(msg.Headers))
	for k, v := range msg.Headers {
		headers[k] = v
	}

	r.mu.Lock()
	ch := r.pubCh
	r.mu.Unlock()

	err := ch.PublishWithContext(ctx, r.cfg.Exchange, msg.Topic, false, false, amqp.Publishing{
		Headers:      headers,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    string(msg.Key),
		Timestamp:    time.Now(),
		Body:         msg.Body,
	})
	if err != nil {
		return fmt.Errorf("messaging: rabbitmq publish: %w", err)
	}

	return nil
}

// Consume implements Consumer. When the channel drops it reconnects and
// resumes until ctx is done or the reconnect budget is spent.
func (r *RabbitMQ) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	co, err := newConsumeOptions(topic, handler, opts...)
	if err != nil {
		return err
	}

	for {
		err := r.consumeOnce(ctx, topic, handler, co)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrClosed) {
			return nil
		}
		if errors.Is(err, errRabbitDial) {
			return err
		}

		slog.WarnContext(ctx, "rabbitmq consumer interrupted, reconnecting", "topic", topic, "group", co.group, "error", err)
	}
}

func (r *RabbitMQ) consumeOnce(ctx context.Context, topic string, handler Handler, co consumeOptions) error {
	conn, err := r.connection(ctx)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	queue := co.group
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(queue, topic, r.cfg.Exchange, false, nil); err != nil {
		return err
	}
	if err := ch.Qos(co.maxInFlight, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for d := range deliveries {
				msg := Message{Topic: d.RoutingKey, Key: []byte(d.MessageId), Body: d.Body, Headers: make(map[string]string, len(d.Headers))}
				for k, v := range d.Headers {
					if s, ok := v.(string); ok {
						msg.Headers[k] = s
					}
				}

				if err := dispatch(ctx, "rabbitmq", handler, msg); err != nil {
					_ = d.Nack(false, true)
					continue
				}
				_ = d.Ack(false)
			}
		})
	}
	wg.Wait()

	return errors.New("messaging: rabbitmq delivery channel closed")
}

// Close closes the connection and stops consumers.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}
	return r.conn.Close()
}
