package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures the Kafka driver.
type KafkaConfig struct {
	Brokers []string
	Dialer  *kafka.Dialer
}

// Kafka writes through a single topic-less writer and reads with one group
// reader per Consume call.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer
	writer  *kafka.Writer

	mu      sync.Mutex
	readers []*kafka.Reader
	closed  bool
}

// NewKafka creates a Kafka client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("messaging: kafka brokers are required")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
	if cfg.Dialer != nil {
		w.Transport = &kafka.Transport{TLS: cfg.Dialer.TLS, SASL: cfg.Dialer.SASLMechanism}
	}

	return &Kafka{brokers: cfg.Brokers, dialer: cfg.Dialer, writer: w}, nil
}

// Publish implements Publisher.
func (k *Kafka) Publish(ctx context.Context, msg Message) error {
	if msg.Topic == "" {
		return ErrTopicRequired
	}

	km := kafka.Message{Topic: msg.Topic, Key: msg.Key, Value: msg.Body, Time: time.Now()}
	for hk, hv := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: hk, Value: []byte(hv)})
	}

	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return nil
}

// Consume implements Consumer. Offsets are committed only after the handler
// succeeds; a failed message stops the partition until it is retried.
func (k *Kafka) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	co, err := newConsumeOptions(topic, handler, opts...)
	if err != nil {
		return err
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        k.brokers,
		GroupID:        co.group,
		Topic:          topic,
		Dialer:         k.dialer,
		MaxBytes:       10e6,
		QueueCapacity:  co.maxInFlight,
		CommitInterval: 0,
	})
	if err := k.track(r); err != nil {
		return errors.Join(err, r.Close())
	}
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("messaging: kafka fetch: %w", err)
		}

		msg := Message{Topic: m.Topic, Key: m.Key, Body: m.Value, Headers: make(map[string]string, len(m.Headers))}
		for _, h := range m.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		if err := k.retry(ctx, handler, msg); err != nil {
			return err
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			return fmt.Errorf("messaging: kafka commit: %w", err)
		}
	}
}

// retry re-runs the handler with a short pause until it succeeds or ctx ends.
func (k *Kafka) retry(ctx context.Context, handler Handler, msg Message) error {
	for {
		if err := dispatch(ctx, "kafka", handler, msg); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func (k *Kafka) track(r *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return ErrClosed
	}
	k.readers = append(k.readers, r)
	return nil
}

// Close closes the writer and every reader.
func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true

	err := k.writer.Close()
	for _, r := range k.readers {
		err = errors.Join(err, r.Close())
	}

	return err
}
