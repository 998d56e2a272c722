// Package kv is the persistent key-value layer every entity store writes
// through. A Backend is the raw durable medium; Store adds JSON encoding and
// swallows medium failures so callers always get a value or a default.
package kv

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/blog-store-api/internal/config"
	"github.com/rs/zerolog"
)

// Backend is a raw durable key-value medium
type Backend interface {
	// Load returns the stored bytes and whether the key exists
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	// DeletePrefix removes every key starting with prefix; "" removes all keys
	DeletePrefix(ctx context.Context, prefix string) error
}

// Factory opens a backend from storage configuration
type Factory func(ctx context.Context, cfg *config.StorageConfig, log zerolog.Logger) (Backend, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend factory available under name
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Open creates the backend registered under name
func Open(ctx context.Context, name string, cfg *config.StorageConfig, log zerolog.Logger) (Backend, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("kv backend %q not registered (have %v)", name, Drivers())
	}
	return f(ctx, cfg, log)
}

// Drivers lists registered backend names
func Drivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
