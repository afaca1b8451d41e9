// Package spectate broadcasts game frames to read-only websocket watchers.
package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
)

// Message is the JSON document sent for every frame
type Message struct {
	Type     string        `json:"type"`
	Notice   loop.Notice   `json:"notice,omitempty"`
	Snapshot pong.Snapshot `json:"snapshot"`
	Events   []pong.Event  `json:"events,omitempty"`
}

// Hub fans frames out to every connected watcher. It serves websocket
// upgrades as an http.Handler.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu       sync.RWMutex
	watchers map[*watcher]struct{}
	latest   []byte
	closed   bool
}

// NewHub creates a hub with no watchers
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Spectating is read-only; any origin may watch.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  512,
			WriteBufferSize: 4096,
		},
		logger:   logger.WithPrefix("spectate"),
		watchers: make(map[*watcher]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the watcher. New watchers get
// the latest frame straight away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	wt := newWatcher(conn, h)
	if !h.register(wt) {
		_ = conn.Close()
		return
	}

	go wt.writePump()
	go wt.readPump()
}

func (h *Hub) register(w *watcher) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.watchers[w] = struct{}{}
	if h.latest != nil {
		w.offer(h.latest)
	}
	h.logger.Info("Watcher connected", "total", len(h.watchers))
	return true
}

func (h *Hub) unregister(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.watchers[w]; !ok {
		return
	}
	delete(h.watchers, w)
	h.logger.Info("Watcher disconnected", "total", len(h.watchers))
}

// Publish encodes frame once and queues it for every watcher. It never
// blocks on a slow watcher.
func (h *Hub) Publish(frame loop.Frame) {
	data, err := Encode(frame)
	if err != nil {
		h.logger.Error("Failed to encode frame", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = data
	for w := range h.watchers {
		w.offer(data)
	}
}

// Latest returns the most recently published message, or nil.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Watchers returns the number of connected watchers
func (h *Hub) Watchers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

// Close disconnects every watcher and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	watchers := h.watchers
	h.watchers = make(map[*watcher]struct{})
	h.mu.Unlock()

	for w := range watchers {
		w.close()
	}
}

// Encode renders a frame as a Message
func Encode(frame loop.Frame) ([]byte, error) {
	data, err := json.Marshal(Message{
		Type:     "frame",
		Notice:   frame.Notice,
		Snapshot: frame.Snapshot,
		Events:   frame.Events,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return data, nil
}

// NewMux serves the hub at /ws, the latest frame at /state and a liveness
// probe at /health.
func NewMux(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		latest := h.Latest()
		if latest == nil {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(latest)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	})
	return mux
}
