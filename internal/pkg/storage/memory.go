package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Memory keeps objects in a map. It backs local runs and tests.
type Memory struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	publicURL string
}

// NewMemory creates an empty store serving URLs under publicURL.
func NewMemory(publicURL string) *Memory {
	return &Memory{objects: make(map[string][]byte), publicURL: publicURL}
}

// Put implements Storage.
func (m *Memory) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return Object{}, err
	}

	m.mu.Lock()
	m.objects[key] = buf.Bytes()
	m.mu.Unlock()

	return Object{Key: key, URL: m.URL(key), Size: n, ContentType: opts.ContentType}, nil
}

// Delete implements Storage.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

// Get returns a stored object's bytes.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.objects[key]
	return b, ok
}

// URL implements Storage.
func (m *Memory) URL(key string) string { return publicURL(m.publicURL, key) }

// Close implements io.Closer.
func (*Memory) Close() error { return nil }
