package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 8)}
}

func TestHubBroadcastToUser(t *testing.T) {
	h := NewHub()
	a1 := newTestClient(1)
	a2 := newTestClient(1)
	b := newTestClient(2)
	h.Register(a1)
	h.Register(a2)
	h.Register(b)

	h.BroadcastToUser(1, map[string]string{"hello": "world"})

	assert.Len(t, a1.Send, 1)
	assert.Len(t, a2.Send, 1)
	assert.Len(t, b.Send, 0)

	var got map[string]string
	require.NoError(t, json.Unmarshal(<-a1.Send, &got))
	assert.Equal(t, "world", got["hello"])
}

func TestHubBroadcastAll(t *testing.T) {
	h := NewHub()
	a := newTestClient(1)
	b := newTestClient(2)
	h.Register(a)
	h.Register(b)

	h.BroadcastAll(map[string]string{"type": "ping"})

	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
}

func TestHubSlowConsumerDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	h.Register(c)

	h.BroadcastToUser(1, "first")
	h.BroadcastToUser(1, "second") // buffer full, dropped

	assert.Len(t, c.Send, 1)
}

func TestHubUnregisterOnClose(t *testing.T) {
	h := NewHub()
	c := newTestClient(1)
	h.Register(c)
	assert.True(t, h.IsOnlineNow(1))
	assert.Equal(t, 1, h.ClientCount())

	c.Close()
	assert.False(t, h.IsOnlineNow(1))
	assert.Equal(t, 0, h.ClientCount())

	// Double close is safe.
	c.Close()
}

func TestSendToClosedClientIsNoOp(t *testing.T) {
	c := newTestClient(1)
	c.Close()

	// Must not panic on the closed channel, and must not resurrect it.
	c.trySend([]byte("late"))
	_, open := <-c.Send
	assert.False(t, open)
}

func TestChatRoomBroadcastSurvivesClosedMember(t *testing.T) {
	hub := NewChatHub()
	room := hub.GetOrCreateRoom(7)
	sender := newTestClient(1)
	gone := newTestClient(2)
	alive := newTestClient(3)
	room.Join(sender)
	room.Join(gone)
	room.Join(alive)

	// A member whose connection died mid-broadcast is skipped, not sent to.
	gone.Close()
	room.Broadcast(sender, map[string]string{"type": "message"})

	assert.Len(t, alive.Send, 1)
}

func TestMapHubSeed(t *testing.T) {
	m := NewMapHub()
	viewer := newTestClient(9)
	m.Register(viewer)

	m.Seed([]MapMarker{
		{UserID: 1, DisplayName: "Alice", Lat: 12.5, Lng: 77.6, IsOnline: true},
		{UserID: 2, DisplayName: "Bob", Lat: 12.6, Lng: 77.7, IsOnline: false},
	})

	// Seeding rebuilds the snapshot silently; no deltas go out.
	assert.Len(t, viewer.Send, 0)

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, uint(1), snap[0].UserID)
}

func TestMapHubMarkers(t *testing.T) {
	m := NewMapHub()
	viewer := newTestClient(9)
	m.Register(viewer)

	m.UpdateMarker(1, "Alice", "", "chill", 12.5, 77.6, true)

	require.Len(t, viewer.Send, 1)
	var msg struct {
		Type   string    `json:"type"`
		Marker MapMarker `json:"marker"`
	}
	require.NoError(t, json.Unmarshal(<-viewer.Send, &msg))
	assert.Equal(t, "marker", msg.Type)
	assert.Equal(t, uint(1), msg.Marker.UserID)
	assert.Equal(t, 12.5, msg.Marker.Lat)

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, uint(1), snap[0].UserID)

	m.RemoveMarker(1)
	assert.Empty(t, m.Snapshot())
	require.Len(t, viewer.Send, 1)
	var removed struct {
		Type   string `json:"type"`
		UserID uint   `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(<-viewer.Send, &removed))
	assert.Equal(t, "marker_removed", removed.Type)

	// Removing an absent marker broadcasts nothing.
	m.RemoveMarker(1)
	assert.Len(t, viewer.Send, 0)
}

func TestChatRoomBroadcastExcludesSender(t *testing.T) {
	hub := NewChatHub()
	room := hub.GetOrCreateRoom(5)
	sender := newTestClient(1)
	other := newTestClient(2)
	room.Join(sender)
	room.Join(other)

	room.Broadcast(sender, map[string]string{"type": "message"})

	assert.Len(t, sender.Send, 0)
	assert.Len(t, other.Send, 1)
	assert.True(t, room.HasUser(2))
	assert.False(t, room.HasUser(3))
}

func TestChatHubRoomLifecycle(t *testing.T) {
	hub := NewChatHub()
	room := hub.GetOrCreateRoom(5)
	assert.Same(t, room, hub.GetOrCreateRoom(5))

	c := newTestClient(1)
	room.Join(c)
	hub.RemoveRoomIfEmpty(5)
	assert.NotNil(t, hub.GetRoom(5))

	room.Leave(c)
	hub.RemoveRoomIfEmpty(5)
	assert.Nil(t, hub.GetRoom(5))
}
