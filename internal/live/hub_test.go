package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samuel04-png/aether-api/internal/logger"
)

// parkableSource serves a single "tasks" resource. Every load after the
// first parks until release is closed, so tests can hold a reload in flight.
type parkableSource struct {
	loads   int32
	started chan struct{}
	release chan struct{}
}

func newParkableSource() *parkableSource {
	return &parkableSource{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *parkableSource) Resolve(_ context.Context, userID uint64, resource string) (string, func(context.Context) (interface{}, error), error) {
	return UserTasks(userID), func(context.Context) (interface{}, error) {
		if atomic.AddInt32(&s.loads, 1) > 1 {
			s.started <- struct{}{}
			<-s.release
		}
		return []string{"snapshot"}, nil
	}, nil
}

func dialHub(t *testing.T, hub *Hub) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeClient(r.Context(), conn, 1)
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return srv, conn
}

func TestHub_SubscribeDeliversInitialSnapshot(t *testing.T) {
	hub := NewHub(NewFeed(), newParkableSource(), logger.New("test"))

	srv, conn := dialHub(t, hub)
	defer srv.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Command{Action: "subscribe", Resource: "tasks"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "tasks", snap.Resource)
	assert.NotNil(t, snap.Data)
}

func TestHub_DisconnectDuringSnapshotLoad(t *testing.T) {
	feed := NewFeed()
	source := newParkableSource()
	hub := NewHub(feed, source, logger.New("test"))

	srv, conn := dialHub(t, hub)
	defer srv.Close()

	require.NoError(t, conn.WriteJSON(Command{Action: "subscribe", Resource: "tasks"}))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))

	// Park the reload triggered by the signal, then drop the client while
	// the load is still in flight.
	feed.Publish(UserTasks(1))
	select {
	case <-source.started:
	case <-time.After(2 * time.Second):
		t.Fatal("reload never started")
	}

	conn.Close()
	waitFor(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 0
	})

	// The parked load now completes against the dropped client. Delivering
	// to it must be a no-op, not a send on a closed channel.
	close(source.release)
	time.Sleep(50 * time.Millisecond)
}
