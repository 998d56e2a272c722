package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// Pinger is implemented by backends that can report their own health
type Pinger interface {
	Ping(ctx context.Context) error
}

// FailureRecorder counts swallowed storage failures
type FailureRecorder interface {
	RecordStorageFailure(op string)
}

// Option configures a Store
type Option func(*Store)

// WithNamespace prefixes every key, isolating deployments that share a medium
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// WithFailureRecorder reports swallowed failures to r
func WithFailureRecorder(r FailureRecorder) Option {
	return func(s *Store) { s.failures = r }
}

// Store is the JSON key-value layer. None of its operations return errors:
// medium and encoding failures are logged and surface as false or the
// caller's default.
type Store struct {
	backend   Backend
	namespace string
	failures  FailureRecorder
	log       zerolog.Logger
}

// New wraps backend
func New(backend Backend, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     log.With().Str("component", "kv").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the underlying medium
func (s *Store) Backend() Backend {
	return s.backend
}

func (s *Store) key(k string) string {
	return s.namespace + k
}

func (s *Store) fail(op, key string, err error) {
	s.log.Error().Err(err).Str("op", op).Str("key", key).Msg("Storage operation failed")
	if s.failures != nil {
		s.failures.RecordStorageFailure(op)
	}
}

// ErrCorrupt marks a stored value that exists but cannot be decoded
var ErrCorrupt = errors.New("stored value is corrupt")

// Get decodes the value stored under key into dst, which must be a non-nil
// pointer. It returns false when the key is missing or the value cannot be
// read; dst is left untouched in that case.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	ok, err := s.Lookup(ctx, key, dst)
	return ok && err == nil
}

// Lookup is Get for callers that must tell a missing key apart from a
// failed read. It reports (false, nil) for a missing key, an error wrapping
// ErrCorrupt for an undecodable value and the medium's error otherwise.
// Failures are still logged and counted.
func (s *Store) Lookup(ctx context.Context, key string, dst any) (bool, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		err := fmt.Errorf("destination must be a non-nil pointer, got %T", dst)
		s.fail("get", key, err)
		return false, err
	}

	raw, ok, err := s.backend.Load(ctx, s.key(key))
	if err != nil {
		s.fail("get", key, err)
		return false, err
	}
	if !ok {
		return false, nil
	}

	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		err = fmt.Errorf("%w: %v", ErrCorrupt, err)
		s.fail("get", key, err)
		return false, err
	}
	rv.Elem().Set(tmp.Elem())
	return true, nil
}

// GetOr returns the value stored under key, or def when it is missing or unreadable
func GetOr[T any](ctx context.Context, s *Store, key string, def T) T {
	var v T
	if !s.Get(ctx, key, &v) {
		return def
	}
	return v
}

// Set encodes value as JSON and writes it under key
func (s *Store) Set(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.fail("set", key, fmt.Errorf("encode: %w", err))
		return false
	}
	if err := s.backend.Save(ctx, s.key(key), data); err != nil {
		s.fail("set", key, err)
		return false
	}
	return true
}

// Remove deletes key; removing a missing key succeeds
func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.backend.Delete(ctx, s.key(key)); err != nil {
		s.fail("remove", key, err)
		return false
	}
	return true
}

// Exists reports whether key holds a value
func (s *Store) Exists(ctx context.Context, key string) bool {
	ok, err := s.backend.Has(ctx, s.key(key))
	if err != nil {
		s.fail("exists", key, err)
		return false
	}
	return ok
}

// Clear removes every key in the store's namespace
func (s *Store) Clear(ctx context.Context) bool {
	if err := s.backend.DeletePrefix(ctx, s.namespace); err != nil {
		s.fail("clear", s.namespace, err)
		return false
	}
	return true
}

// Ping reports whether the medium is reachable. Backends without a health
// check are always considered healthy.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
