// backend-go/internal/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/andresuchdata/merchview/backend-go/pkg/logger"
)

var log = logger.With("realtime")

// SnapshotLoader reads the current full snapshot of one collection. The
// hub never diffs: every change event re-reads and re-sends the whole
// collection, mirroring how the console's pages recompute from scratch.
type SnapshotLoader func(ctx context.Context) (interface{}, error)

// Message is one subscription push: a full collection snapshot.
type Message struct {
	Collection string      `json:"collection"`
	Data       interface{} `json:"data"`
}

// Hub fans full-collection snapshots out to WebSocket subscribers. It is
// the single coordinator between "data changed" and "recompute": services
// call Notify after a successful write, the hub loads a fresh snapshot
// and pushes it to everyone subscribed to that collection.
type Hub struct {
	mu      sync.RWMutex
	loaders map[string]SnapshotLoader
	clients map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		loaders: make(map[string]SnapshotLoader),
		clients: make(map[string]map[*websocket.Conn]bool),
	}
}

// RegisterLoader wires the snapshot source for a collection. Collections
// without a loader cannot be subscribed to.
func (h *Hub) RegisterLoader(collection string, load SnapshotLoader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaders[collection] = load
}

// Knows reports whether a loader is registered for the collection.
func (h *Hub) Knows(collection string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.loaders[collection]
	return ok
}

// Subscribe sends the current snapshot and registers the client, so a
// page renders without waiting for the first change. The initial write
// happens under the hub lock, before registration: the conn is never
// visible to Notify while another write to it is in flight, and a failed
// initial write leaves the conn unregistered.
func (h *Hub) Subscribe(ctx context.Context, collection string, conn *websocket.Conn) error {
	payload, err := h.snapshot(ctx, collection)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	if h.clients[collection] == nil {
		h.clients[collection] = make(map[*websocket.Conn]bool)
	}
	h.clients[collection][conn] = true

	log.Debug().Str("collection", collection).Msg("websocket client subscribed")
	return nil
}

// Unsubscribe removes a client. Safe to call for a conn that was never
// registered.
func (h *Hub) Unsubscribe(collection string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[collection]; ok {
		delete(conns, conn)
	}
}

// Notify pushes a fresh snapshot of the collection to all subscribers.
// A failed write drops that subscriber; everyone else still gets the
// snapshot.
func (h *Hub) Notify(ctx context.Context, collection string) {
	h.mu.RLock()
	subscribed := len(h.clients[collection])
	h.mu.RUnlock()
	if subscribed == 0 {
		return
	}

	payload, err := h.snapshot(ctx, collection)
	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("snapshot load for notify failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[collection] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Str("collection", collection).Msg("dropping websocket client")
			conn.Close()
			delete(h.clients[collection], conn)
		}
	}
}

func (h *Hub) snapshot(ctx context.Context, collection string) ([]byte, error) {
	h.mu.RLock()
	load, ok := h.loaders[collection]
	h.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownCollection
	}

	data, err := load(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Collection: collection, Data: data})
}
