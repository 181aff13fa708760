package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T, cfg Config) *Coordinator {
	t.Helper()
	c := NewCoordinator(cfg)
	t.Cleanup(c.Close)
	return c
}

func TestReadServesFreshWithoutRefetch(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}
	opts := Options{StaleAfter: time.Minute}

	res, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Data)
	assert.False(t, res.Stale)

	res, err = c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Data)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "fresh read must not refetch")
}

func TestConcurrentReadersShareOneFetch(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "shared", nil
	}

	const readers = 10
	var wg sync.WaitGroup
	results := make([]Result, readers)
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Read(context.Background(), "k", fetch, Options{StaleAfter: time.Minute})
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "concurrent readers must share a single fetch")
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i].Data)
	}
}

func TestStaleReadServesOldValueAndRevalidates(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "v1", nil
		}
		return "v2", nil
	}
	opts := Options{StaleAfter: 20 * time.Millisecond}

	_, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	// Stale read: old value immediately, refresh in the background
	res, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Data)
	assert.True(t, res.Stale)

	assert.Eventually(t, func() bool {
		res, ok := c.Peek("k")
		return ok && res.Data == "v2"
	}, 2*time.Second, 10*time.Millisecond, "background revalidation must replace the value")
}

func TestStaleWhileErrorKeepsServing(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	var fail atomic.Bool
	fetchErr := errors.New("backend down")
	fetch := func(ctx context.Context) (interface{}, error) {
		if fail.Load() {
			return nil, fetchErr
		}
		return "v1", nil
	}
	opts := Options{StaleAfter: 20 * time.Millisecond}

	_, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)

	fail.Store(true)
	time.Sleep(40 * time.Millisecond)

	res, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Data)
	assert.True(t, res.Stale)

	// Wait for the failed background refresh to be recorded
	assert.Eventually(t, func() bool {
		res, ok := c.Peek("k")
		return ok && res.Err != nil
	}, 2*time.Second, 10*time.Millisecond)

	// Later reads keep the data and expose the revalidation error
	res, err = c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, "v1", res.Data)
	assert.ErrorIs(t, res.Err, fetchErr)
}

func TestDegradesAfterRepeatedFailures(t *testing.T) {
	c := newTestCoordinator(t, Config{MaxStaleFailures: 1})
	var fail atomic.Bool
	fetch := func(ctx context.Context) (interface{}, error) {
		if fail.Load() {
			return nil, errors.New("backend down")
		}
		return "v1", nil
	}
	opts := Options{StaleAfter: 20 * time.Millisecond}

	_, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)

	fail.Store(true)
	time.Sleep(40 * time.Millisecond)

	// First stale read still serves, failure gets recorded in the background
	_, err = c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		res, ok := c.Peek("k")
		return ok && res.Err != nil
	}, 2*time.Second, 10*time.Millisecond)

	// Past the failure bound, stale data is no longer acceptable
	_, err = c.Read(context.Background(), "k", fetch, opts)
	assert.Error(t, err)
}

func TestEmptyEntryFetchErrorPropagates(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	fetchErr := errors.New("backend down")
	fetch := func(ctx context.Context) (interface{}, error) {
		return nil, fetchErr
	}

	_, err := c.Read(context.Background(), "k", fetch, Options{StaleAfter: time.Minute})
	assert.ErrorIs(t, err, fetchErr)
}

func TestInvalidateIsPrefixScoped(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	counts := map[string]*int32{
		"blog-list:a":   new(int32),
		"blog-list:b":   new(int32),
		"blog-detail:x": new(int32),
	}
	opts := Options{StaleAfter: time.Minute}

	for key, count := range counts {
		count := count
		_, err := c.Read(context.Background(), key, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(count, 1)
			return "v", nil
		}, opts)
		require.NoError(t, err)
	}

	c.Invalidate("blog-list")

	for key, count := range counts {
		count := count
		_, err := c.Read(context.Background(), key, func(ctx context.Context) (interface{}, error) {
			atomic.AddInt32(count, 1)
			return "v", nil
		}, opts)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 2, atomic.LoadInt32(counts["blog-list:a"]))
	assert.EqualValues(t, 2, atomic.LoadInt32(counts["blog-list:b"]))
	assert.EqualValues(t, 1, atomic.LoadInt32(counts["blog-detail:x"]), "invalidation must not cross the prefix boundary")
}

func TestInvalidateRefreshesSubscribedEntries(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	_, err := c.Read(context.Background(), "blog-list:a", fetch, Options{StaleAfter: time.Minute})
	require.NoError(t, err)

	unsubscribe := c.Subscribe("blog-list:a")
	defer unsubscribe()

	c.Invalidate("blog-list")

	// No read happens, yet the subscribed entry refreshes on its own
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRemoveDropsEntry(t *testing.T) {
	c := newTestCoordinator(t, Config{})
	var calls int32
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}
	opts := Options{StaleAfter: time.Minute}

	_, err := c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Remove("k")
	assert.Equal(t, 0, c.Len())

	_, ok := c.Peek("k")
	assert.False(t, ok)

	_, err = c.Read(context.Background(), "k", fetch, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "a removed entry must refetch")
}

func TestJanitorEvictsUnusedEntries(t *testing.T) {
	c := newTestCoordinator(t, Config{SweepInterval: 20 * time.Millisecond})
	fetch := func(ctx context.Context) (interface{}, error) { return "v", nil }
	opts := Options{StaleAfter: time.Minute, GCAfter: 30 * time.Millisecond}

	_, err := c.Read(context.Background(), "idle", fetch, opts)
	require.NoError(t, err)
	_, err = c.Read(context.Background(), "watched", fetch, opts)
	require.NoError(t, err)

	unsubscribe := c.Subscribe("watched")
	defer unsubscribe()

	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, 2*time.Second, 10*time.Millisecond, "idle entry should be evicted")

	_, ok := c.Peek("watched")
	assert.True(t, ok, "subscribed entry must survive eviction")
}
