package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/auth"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"
	"github.com/reehan7086/EchoVibe-sub000/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	chatWriteWait  = 10 * time.Second
	chatPongWait   = 60 * time.Second
	chatPingPeriod = (chatPongWait * 9) / 10
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// UpgradeChatWS upgrades to WebSocket for one chat room; query: token,
// chat_id. The user must be a participant. Incoming messages are persisted
// first, then fanned out to the room; a counterpart with no connection in
// the room gets a notification instead.
func UpgradeChatWS(cfg *config.JWTConfig, chatHub *ws.ChatHub, chatRepo *repository.ChatRepository, userRepo *repository.UserRepository, notifSvc *service.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		chatIDStr := c.Query("chat_id")
		if token == "" || chatIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token and chat_id required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		chatID64, err := strconv.ParseUint(chatIDStr, 10, 64)
		if err != nil || chatID64 == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat_id"})
			return
		}
		chat, err := chatRepo.GetByID(uint(chatID64))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		if !chat.HasParticipant(claims.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not part of this chat"})
			return
		}
		conn, err := chatUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		client := &ws.Client{
			UserID: claims.UserID,
			Send:   make(chan []byte, 256),
		}
		room := chatHub.GetOrCreateRoom(chat.ID)
		room.Join(client)
		defer func() {
			room.Leave(client)
			client.Close()
			chatHub.RemoveRoomIfEmpty(chat.ID)
		}()
		conn.SetReadDeadline(time.Now().Add(chatPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(chatPongWait))
			return nil
		})
		go func() {
			ticker := time.NewTicker(chatPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
		counterpartID := chat.Counterpart(claims.UserID)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg struct {
				Type     string `json:"type"`
				Content  string `json:"content"`
				MediaURL string `json:"media_url"`
			}
			if json.Unmarshal(raw, &msg) != nil || msg.Type != "message" {
				continue
			}
			m := &models.Message{
				ChatID:   chat.ID,
				SenderID: claims.UserID,
				Content:  msg.Content,
				MediaURL: msg.MediaURL,
			}
			if err := chatRepo.CreateMessage(m); err != nil {
				continue
			}
			payload := map[string]interface{}{
				"type":       "message",
				"id":         m.ID,
				"chat_id":    m.ChatID,
				"sender_id":  m.SenderID,
				"content":    m.Content,
				"media_url":  m.MediaURL,
				"created_at": m.CreatedAt,
			}
			room.Broadcast(client, payload)
			if !room.HasUser(counterpartID) {
				if sender, err := userRepo.GetByID(claims.UserID); err == nil {
					_ = notifSvc.NotifyMessage(counterpartID, sender.ID, sender.DisplayName, chat.ID)
				}
			}
		}
	}
}
