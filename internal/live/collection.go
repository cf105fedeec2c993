package live

import (
	"context"
	"sync"

	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/metrics"
	"github.com/Samuel04-png/aether-api/internal/retry"
)

// Collection is a view-state cache bound to a live query. Each change signal
// on the collection's path triggers a reload; the reload replaces the whole
// cached snapshot atomically. The snapshot has whatever shape the loader
// produces, usually a mapped DTO slice. Loading is true only until the first
// snapshot arrives. A load failure keeps the previous snapshot in place and
// records the error; it is logged, not surfaced to watchers.
//
// A Collection built with an empty path (no scoping id) is inert: permanently
// empty, not loading, never subscribed.
type Collection[T any] struct {
	feed *Feed
	path string
	load func(context.Context) (T, error)
	log  *logger.Logger

	mu       sync.RWMutex
	items    T
	loading  bool
	err      error
	watchers map[chan T]struct{}

	cancelSub  func()
	cancelLoop context.CancelFunc
	started    bool
}

// NewCollection binds a loader to a collection path on the feed.
func NewCollection[T any](feed *Feed, path string, load func(context.Context) (T, error), log *logger.Logger) *Collection[T] {
	return &Collection[T]{
		feed:     feed,
		path:     path,
		load:     load,
		log:      log,
		loading:  path != "",
		watchers: make(map[chan T]struct{}),
	}
}

// Start performs the initial load and begins following change signals.
// Starting an inert collection is a no-op.
func (c *Collection[T]) Start(ctx context.Context) {
	c.mu.Lock()
	if c.path == "" || c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	signals, cancelSub := c.feed.Subscribe(c.path)
	loopCtx, cancelLoop := context.WithCancel(ctx)

	c.mu.Lock()
	c.cancelSub = cancelSub
	c.cancelLoop = cancelLoop
	c.mu.Unlock()

	c.refresh(loopCtx)

	go func() {
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-signals:
				c.refresh(loopCtx)
			}
		}
	}()
}

// Close tears the subscription down and releases watchers.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	if c.cancelLoop != nil {
		c.cancelLoop()
	}
	if c.cancelSub != nil {
		c.cancelSub()
	}
	for ch := range c.watchers {
		close(ch)
	}
	c.watchers = make(map[chan T]struct{})
	c.mu.Unlock()
}

// Snapshot returns the current cached snapshot. Callers must treat it as
// read-only.
func (c *Collection[T]) Snapshot() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items
}

// Loading reports whether the first snapshot is still pending.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the error recorded by the most recent load, if any.
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Watch delivers each new snapshot. Deliveries coalesce when the watcher
// lags. The cancel func releases the watcher.
func (c *Collection[T]) Watch() (<-chan T, func()) {
	ch := make(chan T, 1)

	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.watchers[ch]; ok {
			delete(c.watchers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}

	return ch, cancel
}

// Mutate applies patch to the cached snapshot immediately, runs write under
// the shared retry policy, and reconciles with the store if the write is
// rejected. On success the next feed signal reconciles the cache instead.
// A patch must not modify the snapshot it receives; it returns a new one.
func (c *Collection[T]) Mutate(ctx context.Context, patch func(T) T, write func(context.Context) error) error {
	if patch != nil {
		c.mu.Lock()
		c.items = patch(c.items)
		c.mu.Unlock()
		c.notify()
	}

	if err := retry.Do(ctx, retry.DefaultConfig(), write); err != nil {
		// No feed signal follows a rejected write. Reload rather than
		// restore the pre-patch snapshot, so refreshes that landed while
		// the write was in flight are not thrown away.
		if c.path != "" {
			c.refresh(ctx)
		}
		return err
	}

	return nil
}

func (c *Collection[T]) refresh(ctx context.Context) {
	items, err := c.load(ctx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		// Stale data beats no data: keep the previous snapshot.
		c.err = err
		c.mu.Unlock()
		if c.log != nil {
			c.log.Error("live collection load failed", "path", c.path, "error", err)
		}
		return
	}
	c.err = nil
	c.items = items
	c.mu.Unlock()

	metrics.SnapshotsDelivered.Inc()
	c.notify()
}

func (c *Collection[T]) notify() {
	snapshot := c.Snapshot()

	c.mu.RLock()
	defer c.mu.RUnlock()
	for ch := range c.watchers {
		select {
		case ch <- snapshot:
		default:
			// Lagging watcher: replace the queued snapshot, never keep a
			// backlog. Watchers always want the latest full state.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
