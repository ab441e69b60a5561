package ws

import (
	"encoding/json"
	"sync"
)

// ChatRoom is one room per chat (two participants, any number of
// connections each).
type ChatRoom struct {
	ChatID  uint
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewChatRoom(chatID uint) *ChatRoom {
	return &ChatRoom{
		ChatID:  chatID,
		clients: make(map[*Client]struct{}),
	}
}

func (r *ChatRoom) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *ChatRoom) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *ChatRoom) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// HasUser reports whether any connection of userID is in the room.
func (r *ChatRoom) HasUser(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.clients {
		if c.UserID == userID {
			return true
		}
	}
	return false
}

// Broadcast sends to every room member except from.
func (r *ChatRoom) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

// ChatHub holds all chat rooms by chat ID.
type ChatHub struct {
	mu    sync.RWMutex
	rooms map[uint]*ChatRoom
}

func NewChatHub() *ChatHub {
	return &ChatHub{rooms: make(map[uint]*ChatRoom)}
}

func (h *ChatHub) GetOrCreateRoom(chatID uint) *ChatRoom {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[chatID]; ok {
		return r
	}
	r := NewChatRoom(chatID)
	h.rooms[chatID] = r
	return r
}

func (h *ChatHub) GetRoom(chatID uint) *ChatRoom {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[chatID]
}

func (h *ChatHub) RemoveRoomIfEmpty(chatID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[chatID]; ok && r.ClientCount() == 0 {
		delete(h.rooms, chatID)
	}
}
