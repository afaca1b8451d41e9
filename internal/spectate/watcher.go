package spectate

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the watcher
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the watcher
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Frames buffered per watcher before older ones are dropped
	sendBuffer = 16
)

// watcher is one read-only websocket client.
type watcher struct {
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	logger *log.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func newWatcher(conn *websocket.Conn, hub *Hub) *watcher {
	return &watcher{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		hub:    hub,
		logger: hub.logger.With("remote", conn.RemoteAddr().String()),
		done:   make(chan struct{}),
	}
}

// offer queues data, discarding the oldest queued frame when the watcher is
// behind. Never blocks.
func (w *watcher) offer(data []byte) {
	for {
		select {
		case <-w.done:
			return
		case w.send <- data:
			return
		default:
		}
		select {
		case <-w.send:
		default:
		}
	}
}

// close signals both pumps to stop. writePump owns closing the connection.
func (w *watcher) close() {
	w.closeOnce.Do(func() { close(w.done) })
}

// readPump discards everything the watcher sends; it exists to process
// control frames and notice disconnects.
func (w *watcher) readPump() {
	defer func() {
		w.hub.unregister(w)
		w.close()
	}()

	w.conn.SetReadLimit(512)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		return w.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				w.logger.Debug("Watcher closed unexpectedly", "error", err)
			}
			return
		}
	}
}

func (w *watcher) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = w.conn.Close()
		w.close()
	}()

	for {
		select {
		case <-w.done:
			_ = w.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return

		case message := <-w.send:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
