package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/metrics"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size; clients only send small commands
	maxMessageSize = 1024
)

// SnapshotSource resolves a client-facing resource name ("tasks",
// "channels/7/messages") into a feed path and a loader producing the full
// snapshot for that resource, scoped to the requesting user. Resolution
// errors mean the user may not subscribe to that resource.
type SnapshotSource interface {
	Resolve(ctx context.Context, userID uint64, resource string) (path string, load func(context.Context) (interface{}, error), err error)
}

// Command is what clients send over the socket.
type Command struct {
	Action   string `json:"action"` // "subscribe" | "unsubscribe"
	Resource string `json:"resource"`
}

// Snapshot is what the hub sends: always the full current state of one
// resource, never a diff.
type Snapshot struct {
	Resource    string      `json:"resource"`
	Data        interface{} `json:"data"`
	DeliveredAt time.Time   `json:"delivered_at"`
}

type errorMessage struct {
	Resource string `json:"resource"`
	Error    string `json:"error"`
}

// Hub tracks connected clients and their per-resource feed subscriptions.
type Hub struct {
	feed   *Feed
	source SnapshotSource
	log    *logger.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func NewHub(feed *Feed, source SnapshotSource, log *logger.Logger) *Hub {
	return &Hub{
		feed:    feed,
		source:  source,
		log:     log,
		clients: make(map[*Client]struct{}),
	}
}

// Client is one websocket subscriber.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	id     string
	userID uint64

	mu     sync.Mutex
	subs   map[string]func() // resource -> cancel
	closed bool
}

// ServeClient registers conn and runs its pumps. Blocks until the read pump
// exits, so callers should run it from the connection's handler goroutine.
func (h *Hub) ServeClient(ctx context.Context, conn *websocket.Conn, userID uint64) {
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 16),
		id:     uuid.NewString(),
		userID: userID,
		subs:   make(map[string]func()),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	metrics.WebsocketClients.Inc()

	go client.writePump()
	client.readPump(ctx)
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()
	if !ok {
		return
	}

	client.mu.Lock()
	for _, cancel := range client.subs {
		cancel()
	}
	client.subs = make(map[string]func())
	// Subscription goroutines outlive the read pump, so the send channel
	// may only be closed under the same lock sendJSON takes.
	client.closed = true
	close(client.send)
	client.mu.Unlock()

	metrics.WebsocketClients.Dec()
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("websocket closed unexpectedly", "client", c.id, "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			continue
		}

		switch cmd.Action {
		case "subscribe":
			c.subscribe(ctx, cmd.Resource)
		case "unsubscribe":
			c.unsubscribe(cmd.Resource)
		}
	}
}

func (c *Client) subscribe(ctx context.Context, resource string) {
	c.mu.Lock()
	_, already := c.subs[resource]
	c.mu.Unlock()
	if already || resource == "" {
		return
	}

	path, load, err := c.hub.source.Resolve(ctx, c.userID, resource)
	if err != nil {
		c.sendJSON(errorMessage{Resource: resource, Error: err.Error()})
		return
	}

	// Each subscription holds its own view-state cache; the cache follows
	// the feed and the socket just mirrors its snapshots.
	col := NewCollection(c.hub.feed, path, load, c.hub.log.WithUser(c.userID))
	snapshots, cancelWatch := col.Watch()
	subCtx, cancelCtx := context.WithCancel(ctx)

	c.mu.Lock()
	c.subs[resource] = func() {
		cancelCtx()
		cancelWatch()
		col.Close()
	}
	c.mu.Unlock()

	col.Start(subCtx)

	go func() {
		for {
			select {
			case <-subCtx.Done():
				return
			case data, ok := <-snapshots:
				if !ok {
					return
				}
				c.sendJSON(Snapshot{Resource: resource, Data: data, DeliveredAt: time.Now().UTC()})
			}
		}
	}()
}

func (c *Client) unsubscribe(resource string) {
	c.mu.Lock()
	cancel, ok := c.subs[resource]
	delete(c.subs, resource)
	c.mu.Unlock()
	if ok {
		cancel()
	}
}

func (c *Client) sendJSON(v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- raw:
	default:
		// Slow consumer; drop this delivery, the next snapshot supersedes it.
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
