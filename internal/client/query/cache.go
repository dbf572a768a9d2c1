package query

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

const (
	DefaultStaleTime  = 10 * time.Minute
	DefaultGCTime     = 15 * time.Minute
	DefaultRetryDelay = time.Second
	DefaultMaxEntries = 256
)

type Options struct {
	// StaleTime is how long a fetched value is served without a refresh.
	StaleTime time.Duration
	// GCTime drops entries not read for this long.
	GCTime time.Duration
	// RetryDelay separates a failed fetch from its single retry.
	RetryDelay time.Duration
	// MaxEntries bounds the cache; least recently used entries go first.
	MaxEntries int
}

func DefaultOptions() Options {
	return Options{
		StaleTime:  DefaultStaleTime,
		GCTime:     DefaultGCTime,
		RetryDelay: DefaultRetryDelay,
		MaxEntries: DefaultMaxEntries,
	}
}

type entry struct {
	value      any
	fetchedAt  time.Time
	lastAccess time.Time
	gen        uint64
}

// Stats counts cache outcomes since construction. Evictions counts every
// entry that left the cache, whether pushed out by the size bound or
// removed by invalidation and expiry.
type Stats struct {
	Hits       int64
	StaleHits  int64
	Misses     int64
	Fetches    int64
	Failures   int64
	Evictions  int64
	Invalidate int64
}

// FetchFunc loads the value for a key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// Cache is safe for concurrent use.
type Cache struct {
	opts   Options
	logger logging.Logger

	mu      sync.Mutex
	entries *lru.Cache[Key, *entry]
	gens    map[models.Kind]uint64

	flight singleflight.Group
	bg     sync.WaitGroup

	hits, staleHits, misses, fetches, failures, evictions, invalidations atomic.Int64

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(opts Options, logger logging.Logger) *Cache {
	def := DefaultOptions()
	if opts.StaleTime <= 0 {
		opts.StaleTime = def.StaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = def.GCTime
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = def.RetryDelay
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = def.MaxEntries
	}
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Cache{
		opts:   opts,
		logger: logger,
		gens:   make(map[models.Kind]uint64),
		now:    time.Now,
		sleep:  sleepCtx,
	}
	// lru.NewWithEvict only fails on a non-positive size.
	c.entries, _ = lru.NewWithEvict[Key, *entry](opts.MaxEntries, func(Key, *entry) {
		c.evictions.Add(1)
	})
	return c
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Query returns the value for key, fetching it with fetch when needed.
func Query[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T", key, v)
	}
	return typed, nil
}

// Get is the untyped form of Query.
func (c *Cache) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	now := c.now()

	c.mu.Lock()
	gen := c.gens[key.Kind]
	e, ok := c.entries.Get(key)
	if ok && (e.gen != gen || now.Sub(e.lastAccess) >= c.opts.GCTime) {
		c.entries.Remove(key)
		ok = false
	}
	if ok {
		e.lastAccess = now
		value, stale := e.value, now.Sub(e.fetchedAt) >= c.opts.StaleTime
		c.mu.Unlock()

		if stale {
			c.staleHits.Add(1)
			c.refresh(key, gen, fetch)
		} else {
			c.hits.Add(1)
		}
		return value, nil
	}
	c.mu.Unlock()

	c.misses.Add(1)
	return c.load(ctx, key, gen, fetch)
}

// load runs one shared fetch per (key, generation). The fetch itself is
// detached from the caller's cancellation so that one impatient caller
// does not fail the others; each caller still stops waiting on its own ctx.
func (c *Cache) load(ctx context.Context, key Key, gen uint64, fetch FetchFunc) (any, error) {
	flightKey := fmt.Sprintf("%s#%d", key, gen)
	ch := c.flight.DoChan(flightKey, func() (any, error) {
		v, err := c.fetchWithRetry(context.WithoutCancel(ctx), key, fetch)
		if err != nil {
			c.failures.Add(1)
			return nil, err
		}
		c.store(key, gen, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *Cache) fetchWithRetry(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.fetches.Add(1)
	v, err := fetch(ctx)
	if err == nil {
		return v, nil
	}

	c.logger.Warn(ctx, "fetch failed, retrying once", "key", key.String(), "error", err)
	if serr := c.sleep(ctx, c.opts.RetryDelay); serr != nil {
		return nil, err
	}

	c.fetches.Add(1)
	return fetch(ctx)
}

func (c *Cache) store(key Key, gen uint64, v any) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key.Kind] != gen {
		return
	}
	c.entries.Add(key, &entry{value: v, fetchedAt: now, lastAccess: now, gen: gen})
}

func (c *Cache) refresh(key Key, gen uint64, fetch FetchFunc) {
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		ctx := context.Background()
		if _, err := c.load(ctx, key, gen, fetch); err != nil {
			c.logger.Warn(ctx, "background refresh failed", "key", key.String(), "error", err)
		}
	}()
}

// InvalidateKind drops every entry of kind. Reads that start afterwards
// always fetch anew.
func (c *Cache) InvalidateKind(kind models.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[kind]++
	for _, k := range c.entries.Keys() {
		if k.Kind == kind {
			c.entries.Remove(k)
		}
	}
	c.invalidations.Add(1)
}

// Sweep drops entries idle for longer than GCTime and returns how many
// were removed. Expired entries are also dropped lazily on read.
func (c *Cache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, k := range c.entries.Keys() {
		e, ok := c.entries.Peek(k)
		if ok && now.Sub(e.lastAccess) >= c.opts.GCTime {
			c.entries.Remove(k)
			n++
		}
	}
	return n
}

// StartJanitor sweeps every interval until ctx is done.
func (c *Cache) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := c.Sweep(); n > 0 {
					c.logger.Debug(ctx, "cache sweep", "removed", n)
				}
			}
		}
	}()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Wait blocks until background refreshes started so far have finished.
func (c *Cache) Wait() { c.bg.Wait() }

func (c *Cache) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		StaleHits:  c.staleHits.Load(),
		Misses:     c.misses.Load(),
		Fetches:    c.fetches.Load(),
		Failures:   c.failures.Load(),
		Evictions:  c.evictions.Load(),
		Invalidate: c.invalidations.Load(),
	}
}
