package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/metrics"
	"github.com/rs/zerolog"
)

// legacyIDThreshold separates sequential ids from ids that were minted from
// millisecond wall-clock timestamps (anything after September 2001).
const legacyIDThreshold = 1_000_000_000_000

// Options configures every entity store built by New
type Options struct {
	// Latency delays each operation to simulate a remote backend
	Latency time.Duration
	Metrics metrics.Recorder
	// Now overrides the clock used for create/update timestamps
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Metrics == nil {
		o.Metrics = metrics.Nop{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// collection is the engine shared by the per-kind stores. It owns an ordered
// slice persisted as one JSON array under key. Every operation reloads the
// slice from the key-value store first and persists it after any mutation.
// Operations on one collection are serialized by mu.
type collection[T any] struct {
	kind    string
	key     string
	store   *kv.Store
	seed    func() []T
	id      func(*T) int
	setID   func(*T, int)
	created func(*T) time.Time

	opts Options
	log  zerolog.Logger

	mu      sync.Mutex
	items   []T
	lastErr string

	// synced is set once items reflect a successful read of the medium.
	// Until then items may be seed data and must not be written back.
	synced   bool
	migrated bool
	loading  atomic.Bool
}

// Loading reports whether an operation is in flight
func (c *collection[T]) Loading() bool {
	return c.loading.Load()
}

// LastError returns the message recorded by the most recent failed operation
func (c *collection[T]) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// begin locks the collection, simulates latency and reloads from storage.
// Storage calls made after the wait use the returned context, which is not
// cancelled with ctx, so a started operation always reaches the medium.
// The returned func must be deferred.
func (c *collection[T]) begin(ctx context.Context) (context.Context, func()) {
	c.mu.Lock()
	c.loading.Store(true)
	c.lastErr = ""
	c.wait(ctx)
	ctx = context.WithoutCancel(ctx)
	c.refreshLocked(ctx)
	return ctx, func() {
		c.loading.Store(false)
		c.mu.Unlock()
	}
}

// wait sleeps for the configured latency. Cancellation cuts the wait short
// but the operation itself still runs to completion.
func (c *collection[T]) wait(ctx context.Context) {
	if c.opts.Latency <= 0 {
		return
	}
	timer := time.NewTimer(c.opts.Latency)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Refresh reloads the collection from the key-value store, falling back to
// the seed dataset when nothing is stored. The first refresh of a store
// instance also repairs legacy timestamp ids.
func (c *collection[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked(context.WithoutCancel(ctx))
}

// refreshLocked only falls back to seed data when the key is missing or its
// value is corrupt. When the medium itself fails the last good snapshot is
// kept; with no snapshot the seed is served read-only.
func (c *collection[T]) refreshLocked(ctx context.Context) {
	var items []T
	found, err := c.store.Lookup(ctx, c.key, &items)
	switch {
	case found:
		c.items = items
		c.synced = true
	case err == nil || errors.Is(err, kv.ErrCorrupt):
		if err != nil {
			c.lastErr = fmt.Sprintf("stored %s collection is unreadable, using seed data", c.kind)
			c.log.Warn().Str("key", c.key).Msg("Falling back to seed data")
		}
		c.items = c.seed()
		c.synced = true
	default:
		c.lastErr = fmt.Sprintf("%s collection could not be read: %v", c.kind, err)
		c.log.Error().Err(err).Str("key", c.key).Bool("have_snapshot", c.synced).Msg("Storage read failed")
		if !c.synced {
			c.items = c.seed()
		}
		return
	}

	if !c.migrated {
		c.migrated = true
		if c.migrateLocked(ctx) {
			c.log.Info().Int("count", len(c.items)).Msg("Reassigned legacy ids")
		}
	}
}

// MigrateLegacyIDs renumbers the collection 1..N in creation order when any
// id looks like a millisecond timestamp. It reports whether anything changed;
// a second run is a no-op.
func (c *collection[T]) MigrateLegacyIDs(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx = context.WithoutCancel(ctx)
	c.migrated = true
	c.refreshLocked(ctx)
	if !c.synced {
		c.migrated = false
		err := fmt.Errorf("%s: %w", c.kind, ErrStorageUnavailable)
		c.opts.Metrics.RecordStoreOperation(c.kind, "migrate", err)
		return false, err
	}
	changed := c.migrateLocked(ctx)
	c.opts.Metrics.RecordStoreOperation(c.kind, "migrate", nil)
	return changed, nil
}

func (c *collection[T]) migrateLocked(ctx context.Context) bool {
	needsConversion := false
	for i := range c.items {
		if c.id(&c.items[i]) > legacyIDThreshold {
			needsConversion = true
			break
		}
	}
	if !needsConversion {
		return false
	}

	sort.SliceStable(c.items, func(i, j int) bool {
		return c.created(&c.items[i]).Before(c.created(&c.items[j]))
	})
	for i := range c.items {
		c.setID(&c.items[i], i+1)
	}
	c.persistLocked(ctx)
	return true
}

func (c *collection[T]) persistLocked(ctx context.Context) {
	if !c.store.Set(ctx, c.key, c.items) {
		c.lastErr = fmt.Sprintf("failed to persist %s collection", c.kind)
	}
}

func (c *collection[T]) indexLocked(id int) int {
	for i := range c.items {
		if c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) nextIDLocked() int {
	maxID := 0
	for i := range c.items {
		if id := c.id(&c.items[i]); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// writable refuses mutations while items may not reflect what is stored,
// so seed data is never written over an unread collection.
func (c *collection[T]) writable(op string) error {
	if c.synced {
		return nil
	}
	return c.finish(op, fmt.Errorf("%s: %w", c.kind, ErrStorageUnavailable))
}

func (c *collection[T]) notFound(id int) error {
	return fmt.Errorf("%s %d: %w", c.kind, id, ErrNotFound)
}

func (c *collection[T]) finish(op string, err error) error {
	if err != nil {
		c.lastErr = err.Error()
	}
	c.opts.Metrics.RecordStoreOperation(c.kind, op, err)
	return err
}

// fetchAll returns a copy of the whole collection. It never fails; a done
// context yields an empty slice and a recorded error.
func (c *collection[T]) fetchAll(ctx context.Context) []T {
	if err := ctx.Err(); err != nil {
		c.mu.Lock()
		c.lastErr = err.Error()
		c.mu.Unlock()
		c.opts.Metrics.RecordStoreOperation(c.kind, "fetch_all", err)
		return []T{}
	}

	_, done := c.begin(ctx)
	defer done()

	out := make([]T, len(c.items))
	copy(out, c.items)
	c.finish("fetch_all", nil)
	return out
}

// fetchOne finds id. touch may mutate the record and return true to have it
// persisted.
func (c *collection[T]) fetchOne(ctx context.Context, id int, touch func(*T) bool) (*T, error) {
	ctx, done := c.begin(ctx)
	defer done()

	idx := c.indexLocked(id)
	if idx == -1 {
		return nil, c.finish("fetch_one", c.notFound(id))
	}
	if touch != nil && c.synced && touch(&c.items[idx]) {
		c.persistLocked(ctx)
	}
	item := c.items[idx]
	c.finish("fetch_one", nil)
	return &item, nil
}

// create validates against the current items, builds the record with the
// next id and inserts it at the front or the back.
func (c *collection[T]) create(ctx context.Context, check func(items []T) error, build func(id int, now time.Time) T, front bool) (*T, error) {
	ctx, done := c.begin(ctx)
	defer done()

	if err := c.writable("create"); err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(c.items); err != nil {
			return nil, c.finish("create", err)
		}
	}

	item := build(c.nextIDLocked(), c.opts.Now())
	if front {
		c.items = append([]T{item}, c.items...)
	} else {
		c.items = append(c.items, item)
	}
	c.persistLocked(ctx)
	c.finish("create", nil)
	return &item, nil
}

// update applies a field merge to record id after check passes
func (c *collection[T]) update(ctx context.Context, op string, id int, check func(items []T, idx int) error, apply func(item *T, now time.Time)) (*T, error) {
	ctx, done := c.begin(ctx)
	defer done()

	if err := c.writable(op); err != nil {
		return nil, err
	}
	idx := c.indexLocked(id)
	if idx == -1 {
		return nil, c.finish(op, c.notFound(id))
	}
	if check != nil {
		if err := check(c.items, idx); err != nil {
			return nil, c.finish(op, err)
		}
	}

	apply(&c.items[idx], c.opts.Now())
	c.persistLocked(ctx)
	item := c.items[idx]
	c.finish(op, nil)
	return &item, nil
}

func (c *collection[T]) remove(ctx context.Context, id int) error {
	ctx, done := c.begin(ctx)
	defer done()

	if err := c.writable("delete"); err != nil {
		return err
	}
	idx := c.indexLocked(id)
	if idx == -1 {
		return c.finish("delete", c.notFound(id))
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.persistLocked(ctx)
	return c.finish("delete", nil)
}

func (c *collection[T]) count(ctx context.Context) int {
	_, done := c.begin(ctx)
	defer done()
	return len(c.items)
}
