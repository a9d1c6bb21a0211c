package menufeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/rasamenu/menu-app/models"
)

func clientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

func resetHub() {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		conn.Close()
		delete(hub.clients, conn)
	}
}

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		RegisterClient(conn)
	}))
}

func dialFeed(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	return conn
}

func waitForClients(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for clientCount() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, want, clientCount())
}

func TestBroadcastMenuItemUpdate(t *testing.T) {
	resetHub()
	srv := newFeedServer(t)
	defer srv.Close()

	conn := dialFeed(t, srv)
	defer conn.Close()
	waitForClients(t, 1)

	BroadcastMenuItemUpdate(models.MenuItem{ID: 7, Name: "Rendang", Price: 25.0})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	assert.NoError(t, err)

	var msg Message
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventMenuItemUpdate, msg.Event)
	data, ok := msg.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "Rendang", data["name"])
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	resetHub()
	srv := newFeedServer(t)
	defer srv.Close()

	first := dialFeed(t, srv)
	defer first.Close()
	second := dialFeed(t, srv)
	defer second.Close()
	waitForClients(t, 2)

	BroadcastCategoryUpdate(models.Category{ID: 3, Name: "Drinks"})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		assert.NoError(t, err)
		var msg Message
		assert.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventCategoryUpdate, msg.Event)
	}
}

func TestBroadcastPrunesClosedClients(t *testing.T) {
	resetHub()
	srv := newFeedServer(t)
	defer srv.Close()

	alive := dialFeed(t, srv)
	defer alive.Close()
	dead := dialFeed(t, srv)
	waitForClients(t, 2)

	dead.Close()

	// Koneksi mati baru terdeteksi saat write gagal, jadi broadcast
	// berulang sampai hub membuangnya.
	deadline := time.Now().Add(2 * time.Second)
	for clientCount() > 1 && time.Now().Before(deadline) {
		BroadcastMenuItemDelete(1)
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, 1, clientCount())

	alive.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := alive.ReadMessage()
	assert.NoError(t, err)
	var msg Message
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventMenuItemDelete, msg.Event)
}
