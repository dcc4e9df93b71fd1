package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huyvng/storedash/pkg/ws"
)

func dialTestHub(t *testing.T, hub *ws.Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	c1 := dialTestHub(t, hub)
	c2 := dialTestHub(t, hub)

	// Wait for both registrations to land in the hub loop.
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, hub.BroadcastJSON("orderCreated", map[string]string{"id": "abc"}))

	for _, conn := range []*websocket.Conn{c1, c2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var event ws.Event
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, "orderCreated", event.Event)
		data, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "abc", data["id"])
	}
}

func TestDisconnectedClientIsUnregistered(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	conn := dialTestHub(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}
