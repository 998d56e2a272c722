package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/blog-store-api/internal/kv"
)

// MockBackend is a map-backed kv.Backend with error injection and call counters
type MockBackend struct {
	mu sync.Mutex

	Data map[string][]byte

	LoadError   error
	SaveError   error
	DeleteError error
	HasError    error
	ClearError  error

	LoadCalls   int
	SaveCalls   int
	DeleteCalls int
}

// Verify interface compliance
var _ kv.Backend = (*MockBackend)(nil)

func NewMockBackend() *MockBackend {
	return &MockBackend{Data: make(map[string][]byte)}
}

func (m *MockBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadError != nil {
		return nil, false, m.LoadError
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *MockBackend) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Data, key)
	return nil
}

func (m *MockBackend) Has(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HasError != nil {
		return false, m.HasError
	}
	_, ok := m.Data[key]
	return ok, nil
}

func (m *MockBackend) DeletePrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearError != nil {
		return m.ClearError
	}
	for k := range m.Data {
		if strings.HasPrefix(k, prefix) {
			delete(m.Data, k)
		}
	}
	return nil
}

// Raw returns the stored bytes for key as a string, "" when missing
func (m *MockBackend) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.Data[key])
}

// Put writes raw bytes under key, bypassing encoding
func (m *MockBackend) Put(key, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = []byte(raw)
}

// MockFailureRecorder counts storage failures by operation
type MockFailureRecorder struct {
	mu    sync.Mutex
	Count map[string]int
}

// Verify interface compliance
var _ kv.FailureRecorder = (*MockFailureRecorder)(nil)

func NewMockFailureRecorder() *MockFailureRecorder {
	return &MockFailureRecorder{Count: make(map[string]int)}
}

func (m *MockFailureRecorder) RecordStorageFailure(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Count[op]++
}
