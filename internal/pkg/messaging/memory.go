package messaging

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

const memoryMaxAttempts = 3

// Memory is an in-process broker. Each group on a topic receives every
// message; within a group a message is handled once. Failed messages are
// retried up to three times. Messages published while no group consumes the
// topic are dropped.
type Memory struct {
	mu     sync.RWMutex
	topics map[string]map[string]chan memoryDelivery
	closed bool
	buffer int
}

type memoryDelivery struct {
	msg     Message
	attempt int
}

// NewMemory creates a Memory broker whose per group queues hold buffer messages.
func NewMemory(buffer int) *Memory {
	return &Memory{
		topics: make(map[string]map[string]chan memoryDelivery),
		buffer: max(buffer, 1),
	}
}

// Publish implements Publisher.
func (m *Memory) Publish(ctx context.Context, msg Message) error {
	if msg.Topic == "" {
		return ErrTopicRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	msg.Headers = maps.Clone(msg.Headers)
	msg.Body = slices.Clone(msg.Body)

	for _, ch := range m.topics[msg.Topic] {
		select {
		case ch <- memoryDelivery{msg: msg, attempt: 1}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// Consume implements Consumer.
func (m *Memory) Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error {
	co, err := newConsumeOptions(topic, handler, opts...)
	if err != nil {
		return err
	}

	ch, err := m.subscribe(topic, co.group)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-ch:
					if !ok {
						return
					}
					m.handle(ctx, ch, handler, d)
				}
			}
		})
	}
	wg.Wait()

	return ctx.Err()
}

func (m *Memory) handle(ctx context.Context, ch chan memoryDelivery, handler Handler, d memoryDelivery) {
	err := dispatch(ctx, "memory", handler, d.msg)
	if err == nil {
		return
	}

	if d.attempt >= memoryMaxAttempts {
		slog.ErrorContext(ctx, "memory broker dropped message", "topic", d.msg.Topic, "attempts", d.attempt, "error", err)
		return
	}

	d.attempt++
	go func() {
		m.mu.RLock()
		defer m.mu.RUnlock()
		if m.closed {
			return
		}
		select {
		case ch <- d:
		case <-ctx.Done():
		}
	}()
}

func (m *Memory) subscribe(topic, group string) (chan memoryDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	groups, ok := m.topics[topic]
	if !ok {
		groups = make(map[string]chan memoryDelivery)
		m.topics[topic] = groups
	}

	ch, ok := groups[group]
	if !ok {
		ch = make(chan memoryDelivery, m.buffer)
		groups[group] = ch
	}

	return ch, nil
}

// Close stops every consumer.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for _, groups := range m.topics {
		for _, ch := range groups {
			close(ch)
		}
	}

	return nil
}
