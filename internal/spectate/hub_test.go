package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pong/internal/loop"
	"github.com/lox/pong/internal/pong"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(testLogger())
	srv := httptest.NewServer(NewMux(hub))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func frameAt(tick int) loop.Frame {
	e := pong.MustNew(pong.DefaultConfig())
	for i := 0; i < tick; i++ {
		e.Step()
	}
	return loop.Frame{Snapshot: e.Snapshot()}
}

func TestHubBroadcastsFrames(t *testing.T) {
	hub, srv := startHub(t)

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Watchers() == 2 }, 5*time.Second, 10*time.Millisecond)

	hub.Publish(frameAt(3))

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.Equal(t, "frame", msg.Type)
		assert.Equal(t, uint64(3), msg.Snapshot.Tick)
		assert.Equal(t, 405, msg.Snapshot.Ball.X)
		assert.Equal(t, 800, msg.Snapshot.FieldWidth)
	}
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	hub, srv := startHub(t)

	hub.Publish(frameAt(1))
	hub.Publish(frameAt(2))

	msg := readMessage(t, dial(t, srv))
	assert.Equal(t, uint64(2), msg.Snapshot.Tick)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Watchers() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Watchers() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHubIgnoresWatcherInput(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Watchers() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"input","velocity":8}`)))
	hub.Publish(frameAt(1))

	msg := readMessage(t, conn)
	assert.Equal(t, uint64(1), msg.Snapshot.Tick)
	assert.Equal(t, 1, hub.Watchers())
}

func TestHubClose(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Watchers() == 1 }, 5*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Watchers())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	hub.Publish(frameAt(1))
	assert.Nil(t, hub.Latest())
}

func TestWatcherDropsOldestWhenBehind(t *testing.T) {
	w := &watcher{send: make(chan []byte, 2), done: make(chan struct{})}

	for _, s := range []string{"1", "2", "3", "4"} {
		w.offer([]byte(s))
	}

	assert.Equal(t, "3", string(<-w.send))
	assert.Equal(t, "4", string(<-w.send))

	w.close()
	w.offer([]byte("5")) // must not block once closed
}

func TestEncode(t *testing.T) {
	e := pong.MustNew(pong.DefaultConfig())
	frame := loop.Frame{
		Snapshot: e.Snapshot(),
		Events:   []pong.Event{{Type: pong.EventPointScored, Tick: 9, Side: pong.Right, Scores: [2]int{0, 1}}},
		Notice:   loop.NoticeReset,
	}

	data, err := Encode(frame)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "frame", raw["type"])
	assert.Equal(t, "reset", raw["notice"])
	assert.Contains(t, raw, "snapshot")
	events := raw["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "point_scored", events[0].(map[string]any)["type"])
	assert.Equal(t, "right", events[0].(map[string]any)["side"])
}

func TestMuxState(t *testing.T) {
	hub, srv := startHub(t)

	resp, err := http.Get(srv.URL + "/state")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	hub.Publish(frameAt(4))

	resp, err = http.Get(srv.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var msg Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	assert.Equal(t, uint64(4), msg.Snapshot.Tick)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
