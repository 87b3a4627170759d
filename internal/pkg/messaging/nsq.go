package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	nsq "github.com/nsqio/go-nsq"
)

// NSQConfig configures the NSQ driver. Consumers prefer lookupd addresses and
// fall back to nsqd.
type NSQConfig struct {
	ProducerAddr string
	NSQDAddrs    []string
	LookupdAddrs []string
}

// NSQ has no message headers, so messages travel as a JSON envelope.
type NSQ struct {
	cfg      NSQConfig
	producer *nsq.Producer
}

type nsqEnvelope struct {
	Key     []byte            `json:"key,omitempty"`
	Body    []byte            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

// NewNSQ creates the producer. Consumers are created per Consume call.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if cfg.ProducerAddr == "" {
		return nil, errors.New("messaging: nsq producer address is required")
	}

	p, err := nsq.NewProducer(cfg.ProducerAddr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq producer: %w", err)
	}
	p.SetLoggerLevel(nsq.LogLevelError)

	return &NSQ{cfg: cfg, producer: p}, nil
}

// Publish implements Publisher.
func (n *NSQ) Publish(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.Topic == "" {
		return ErrTopicRequired
	}

	body, err := json.Marshal(nsqEnvelope{Key: msg.Key, Body: msg.Body, Headers: msg.Headers})
	if err != nil {
		return err
	}

	if err := n.producer.Publish(msg.Topic, body); err != nil {
		return fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return nil
}

// Consume implements Consumer.
func (n *NSQ) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	co, err := newConsumeOptions(topic, handler, opts...)
	if err != nil {
		return err
	}

	cfg := nsq.NewConfig()
	cfg.MaxInFlight = co.maxInFlight

	c, err := nsq.NewConsumer(topic, co.group, cfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq consumer: %w", err)
	}
	c.SetLoggerLevel(nsq.LogLevelError)

	c.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		var env nsqEnvelope
		if err := json.Unmarshal(m.Body, &env); err != nil {
			// not ours; finish it so it is not redelivered forever
			return nil
		}

		return dispatch(ctx, "nsq", handler, Message{Topic: topic, Key: env.Key, Body: env.Body, Headers: env.Headers})
	}), co.concurrency)

	if len(n.cfg.LookupdAddrs) > 0 {
		err = c.ConnectToNSQLookupds(n.cfg.LookupdAddrs)
	} else {
		err = c.ConnectToNSQDs(n.cfg.NSQDAddrs)
	}
	if err != nil {
		c.Stop()
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		c.Stop()
		<-c.StopChan
		return ctx.Err()
	case <-c.StopChan:
		return nil
	}
}

// Close stops the producer.
func (n *NSQ) Close() error {
	n.producer.Stop()
	return nil
}
