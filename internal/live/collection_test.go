package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a loader backed by a mutable slice.
type fakeStore struct {
	mu    sync.Mutex
	items []string
	err   error
	loads int
}

func (s *fakeStore) load(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *fakeStore) set(items []string) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func (s *fakeStore) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestCollection_InertWithoutScopingID(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	// Empty path models a query built before sign-in resolved.
	col := NewCollection(feed, "", store.load, nil)
	col.Start(context.Background())
	defer col.Close()

	assert.False(t, col.Loading())
	assert.Empty(t, col.Snapshot())
	assert.NoError(t, col.Err())
	assert.Equal(t, 0, store.loads)
	assert.Equal(t, 0, feed.SubscriberCount(""))
}

func TestCollection_LoadingUntilFirstSnapshot(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a", "b"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)
	assert.True(t, col.Loading())

	col.Start(context.Background())
	defer col.Close()

	waitFor(t, func() bool { return !col.Loading() })
	assert.Equal(t, []string{"a", "b"}, col.Snapshot())
}

func TestCollection_RefreshesOnFeedSignal(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)
	col.Start(context.Background())
	defer col.Close()

	waitFor(t, func() bool { return len(col.Snapshot()) == 1 })

	store.set([]string{"a", "b"})
	feed.Publish("users/1/tasks")

	waitFor(t, func() bool { return len(col.Snapshot()) == 2 })
}

func TestCollection_KeepsStaleSnapshotOnLoadError(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)
	col.Start(context.Background())
	defer col.Close()

	waitFor(t, func() bool { return len(col.Snapshot()) == 1 })

	store.fail(errors.New("store offline"))
	feed.Publish("users/1/tasks")

	waitFor(t, func() bool { return col.Err() != nil })
	// Stale data beats no data.
	assert.Equal(t, []string{"a"}, col.Snapshot())
}

func TestCollection_MutateAppliesOptimisticPatch(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)
	col.Start(context.Background())
	defer col.Close()

	waitFor(t, func() bool { return len(col.Snapshot()) == 1 })

	err := col.Mutate(context.Background(),
		func(items []string) []string { return append(items, "b") },
		func(ctx context.Context) error {
			store.set([]string{"a", "b"})
			return nil
		})
	require.NoError(t, err)

	// The patch is visible before any reload happens.
	assert.Equal(t, []string{"a", "b"}, col.Snapshot())
}

func TestCollection_MutateRollsBackOnRejectedWrite(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)
	col.Start(context.Background())
	defer col.Close()

	waitFor(t, func() bool { return len(col.Snapshot()) == 1 })

	rejected := errors.New("write rejected")
	err := col.Mutate(context.Background(),
		func(items []string) []string { return append(items, "b") },
		func(ctx context.Context) error { return rejected })
	require.ErrorIs(t, err, rejected)

	assert.Equal(t, []string{"a"}, col.Snapshot())
}

func TestCollection_MutateReconcilesWithStoreOnRejectedWrite(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)
	col.Start(context.Background())
	defer col.Close()

	waitFor(t, func() bool { return len(col.Snapshot()) == 1 })

	rejected := errors.New("write rejected")
	err := col.Mutate(context.Background(),
		func(items []string) []string { return append(items, "b") },
		func(ctx context.Context) error {
			// Another session's write lands while ours is being rejected.
			store.set([]string{"a", "z"})
			return rejected
		})
	require.ErrorIs(t, err, rejected)

	// Reconciliation reloads from the store instead of restoring the
	// pre-patch snapshot, so the interleaved write survives.
	assert.Equal(t, []string{"a", "z"}, col.Snapshot())
}

func TestCollection_WatchDeliversSnapshots(t *testing.T) {
	feed := NewFeed()
	store := &fakeStore{items: []string{"a"}}

	col := NewCollection(feed, "users/1/tasks", store.load, nil)

	snapshots, cancel := col.Watch()
	defer cancel()

	col.Start(context.Background())
	defer col.Close()

	select {
	case snap := <-snapshots:
		assert.Equal(t, []string{"a"}, snap)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never received the initial snapshot")
	}
}
