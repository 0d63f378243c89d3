package kv

import (
	"context"
	"time"

	"github.com/kailas-cloud/livio/internal/db"
)

// mockHashStore keeps hashes in memory and records calls.
type mockHashStore struct {
	data    map[string]map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	delKeys []string
}

func newMockHashStore() *mockHashStore {
	return &mockHashStore{
		data: make(map[string]map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockHashStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.setErr != nil {
		return m.setErr
	}
	h, ok := m.data[key]
	if !ok {
		h = make(map[string]string)
		m.data[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *mockHashStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	h, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return h, nil
}

func (m *mockHashStore) Del(_ context.Context, key string) error {
	m.delKeys = append(m.delKeys, key)
	delete(m.data, key)
	return nil
}

func (m *mockHashStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.ttls[key] = ttl
	return nil
}
