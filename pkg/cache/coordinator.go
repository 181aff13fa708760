package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetcher loads the value for a cache key from the origin.
type Fetcher func(ctx context.Context) (interface{}, error)

// Options control per-key freshness and eviction windows.
type Options struct {
	StaleAfter time.Duration // age after which a read triggers a refetch
	GCAfter    time.Duration // disuse after which the entry is evicted
}

// Result is what a coordinator read returns. Data and Err can coexist:
// a failed revalidation keeps serving the previous value while exposing
// the error separately (stale-while-error).
type Result struct {
	Data      interface{}
	Err       error
	Stale     bool
	FetchedAt time.Time
}

// Per-key lifecycle: Empty -> Fetching -> Fresh -> Stale -> Fetching -> ...
// A fetch failure on a populated entry keeps the old data; a failure on an
// empty entry leaves it empty with the error retained for later readers.
type entry struct {
	data        interface{}
	hasData     bool
	fetchedAt   time.Time
	lastErr     error
	failures    int // consecutive fetch failures
	lastAccess  time.Time
	staleAfter  time.Duration
	gcAfter     time.Duration
	fetcher     Fetcher
	subscribers int
	refreshing  bool
}

// Config tunes the coordinator.
type Config struct {
	// MaxStaleFailures bounds stale-while-error: after this many consecutive
	// revalidation failures the entry stops serving stale data and reads
	// degrade to a blocking refetch. 0 means the default (5).
	MaxStaleFailures int

	// SweepInterval is how often the janitor evicts disused entries.
	// 0 means the default (1 minute).
	SweepInterval time.Duration
}

const (
	defaultMaxStaleFailures = 5
	defaultSweepInterval    = time.Minute
	defaultGCAfter          = 30 * time.Minute
)

// Coordinator is a keyed cache of in-flight and completed fetches.
// Guarantees at most one network request per key at any time: concurrent
// readers of the same key attach to the in-flight call instead of
// re-issuing it.
type Coordinator struct {
	mu               sync.Mutex
	entries          map[string]*entry
	group            singleflight.Group
	maxStaleFailures int

	stop     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a coordinator and starts its janitor goroutine.
// Call Close when done.
func NewCoordinator(cfg Config) *Coordinator {
	if cfg.MaxStaleFailures <= 0 {
		cfg.MaxStaleFailures = defaultMaxStaleFailures
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	c := &Coordinator{
		entries:          make(map[string]*entry),
		maxStaleFailures: cfg.MaxStaleFailures,
		stop:             make(chan struct{}),
	}
	go c.janitor(cfg.SweepInterval)
	return c
}

// Close stops the janitor. In-flight fetches still run to completion.
func (c *Coordinator) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Read returns the cached value for key, fetching through fetch when the
// entry is empty or stale.
//
//   - Fresh entry: returned immediately, no fetch.
//   - Stale entry: returned immediately, background revalidation kicked off.
//   - Empty entry: blocking fetch; concurrent readers share one call.
func (c *Coordinator) Read(ctx context.Context, key string, fetch Fetcher, opts Options) (Result, error) {
	now := time.Now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	// Retain the fetcher so Invalidate can refresh subscribed keys.
	e.fetcher = fetch
	if opts.StaleAfter > 0 {
		e.staleAfter = opts.StaleAfter
	}
	if opts.GCAfter > 0 {
		e.gcAfter = opts.GCAfter
	}
	e.lastAccess = now

	if e.hasData && e.staleAfter > 0 && now.Before(e.fetchedAt.Add(e.staleAfter)) {
		res := Result{Data: e.data, FetchedAt: e.fetchedAt}
		c.mu.Unlock()
		return res, nil
	}

	if e.hasData {
		if e.failures >= c.maxStaleFailures {
			// Degraded: too many consecutive failures, stop serving stale.
			c.mu.Unlock()
			return c.fetchShared(ctx, key)
		}
		res := Result{Data: e.data, Err: e.lastErr, Stale: true, FetchedAt: e.fetchedAt}
		spawn := !e.refreshing
		if spawn {
			e.refreshing = true
		}
		c.mu.Unlock()
		if spawn {
			c.startRefresh(key)
		}
		return res, nil
	}

	c.mu.Unlock()
	return c.fetchShared(ctx, key)
}

// Peek returns the current state of a key without triggering a fetch.
func (c *Coordinator) Peek(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	stale := !e.hasData || e.staleAfter <= 0 || time.Now().After(e.fetchedAt.Add(e.staleAfter))
	return Result{Data: e.data, Err: e.lastErr, Stale: stale, FetchedAt: e.fetchedAt}, true
}

// Subscribe registers an active reader for key. The returned func
// unsubscribes. Unsubscribing does not cancel an in-flight fetch; the fetch
// runs to completion and updates the cache.
func (c *Coordinator) Subscribe(key string) func() {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{lastAccess: time.Now()}
		c.entries[key] = e
	}
	e.subscribers++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if e, ok := c.entries[key]; ok && e.subscribers > 0 {
				e.subscribers--
			}
			c.mu.Unlock()
		})
	}
}

// Invalidate marks every entry whose key equals or starts with prefix as
// stale. Entries with active subscribers are refreshed immediately in the
// background; the rest refetch on their next read.
func (c *Coordinator) Invalidate(prefix string) {
	var refresh []string

	c.mu.Lock()
	for k, e := range c.entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		e.fetchedAt = time.Time{}
		if e.subscribers > 0 && e.fetcher != nil && !e.refreshing {
			e.refreshing = true
			refresh = append(refresh, k)
		}
	}
	c.mu.Unlock()

	for _, k := range refresh {
		c.startRefresh(k)
	}
}

// Remove drops the entry and its in-flight call entirely. Used after
// deletes, where serving stale data is never acceptable.
func (c *Coordinator) Remove(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	c.group.Forget(key)
}

// Len reports the number of live entries.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fetchShared performs a blocking fetch, de-duplicated per key: concurrent
// callers for the same key all observe the result of a single call.
func (c *Coordinator) fetchShared(ctx context.Context, key string) (Result, error) {
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		e, ok := c.entries[key]
		if !ok || e.fetcher == nil {
			c.mu.Unlock()
			return nil, nil
		}
		fetch := e.fetcher
		c.mu.Unlock()

		data, ferr := fetch(ctx)
		c.record(key, data, ferr)
		return data, ferr
	})
	if err != nil {
		// Serve the previous value if one survives (stale-while-error).
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && e.hasData && e.failures < c.maxStaleFailures {
			res := Result{Data: e.data, Err: err, Stale: true, FetchedAt: e.fetchedAt}
			c.mu.Unlock()
			return res, nil
		}
		c.mu.Unlock()
		return Result{Err: err}, err
	}
	return Result{Data: v, FetchedAt: time.Now()}, nil
}

// startRefresh revalidates key in the background. Detached from the caller's
// context: an unsubscribed reader must not cancel a fetch other readers may
// depend on.
func (c *Coordinator) startRefresh(key string) {
	go func() {
		c.group.Do(key, func() (interface{}, error) {
			c.mu.Lock()
			e, ok := c.entries[key]
			if !ok || e.fetcher == nil {
				c.mu.Unlock()
				return nil, nil
			}
			fetch := e.fetcher
			c.mu.Unlock()

			data, err := fetch(context.Background())
			c.record(key, data, err)
			return data, err
		})
	}()
}

// record stores a fetch outcome. A failure on a populated entry keeps the
// old data and bumps the consecutive-failure counter; success resets it.
func (c *Coordinator) record(key string, data interface{}, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		// Removed while the fetch was in flight - drop the result.
		return
	}
	e.refreshing = false
	if err != nil {
		e.lastErr = err
		e.failures++
		return
	}
	e.data = data
	e.hasData = true
	e.fetchedAt = time.Now()
	e.lastErr = nil
	e.failures = 0
}

func (c *Coordinator) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.entries {
				gc := e.gcAfter
				if gc <= 0 {
					gc = defaultGCAfter
				}
				if e.subscribers == 0 && !e.refreshing && now.After(e.lastAccess.Add(gc)) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
