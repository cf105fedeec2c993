package live

import "sync"

// Feed is the in-process change bus. Mutations publish the path of the
// collection they touched; subscribers get a coalesced change signal and
// re-query for a full snapshot. The feed carries no payloads on purpose:
// deliveries are always whole snapshots, never diffs.
type Feed struct {
	mu   sync.RWMutex
	subs map[string]map[chan struct{}]struct{}
}

func NewFeed() *Feed {
	return &Feed{
		subs: make(map[string]map[chan struct{}]struct{}),
	}
}

// Publish signals every subscriber of path. Signals coalesce: a subscriber
// that has not drained its pending signal will not queue another one.
func (f *Feed) Publish(path string) {
	if path == "" {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subs[path] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers for change signals on path. The returned cancel func
// must be called when the subscriber goes away.
func (f *Feed) Subscribe(path string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	if f.subs[path] == nil {
		f.subs[path] = make(map[chan struct{}]struct{})
	}
	f.subs[path][ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if set, ok := f.subs[path]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(f.subs, path)
			}
		}
		f.mu.Unlock()
	}

	return ch, cancel
}

// SubscriberCount reports the number of active subscriptions on path.
func (f *Feed) SubscriberCount(path string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[path])
}
