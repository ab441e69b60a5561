package handler

import (
	"net/http"
	"strconv"

	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatRepo   *repository.ChatRepository
	userRepo   *repository.UserRepository
	safetyRepo *repository.SafetyRepository
}

func NewChatHandler(chatRepo *repository.ChatRepository, userRepo *repository.UserRepository, safetyRepo *repository.SafetyRepository) *ChatHandler {
	return &ChatHandler{chatRepo: chatRepo, userRepo: userRepo, safetyRepo: safetyRepo}
}

type OpenChatRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Open returns the chat with another user, creating it on first contact.
func (h *ChatHandler) Open(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	var req OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == callerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot chat with yourself"})
		return
	}
	if _, err := h.userRepo.GetByID(req.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if blocked, _ := h.safetyRepo.IsBlockedEither(callerID, req.UserID); blocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "chat not possible"})
		return
	}
	chat, err := h.chatRepo.GetOrCreate(callerID, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "open failed"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// List returns the caller's chats with counterpart, last message, and
// unread count per chat.
func (h *ChatHandler) List(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	chats, err := h.chatRepo.ListByUser(callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	out := make([]gin.H, len(chats))
	for i, chat := range chats {
		other := chat.UserA
		if chat.UserAID == callerID {
			other = chat.UserB
		}
		row := gin.H{
			"id":   chat.ID,
			"user": other.Public(),
		}
		if last, err := h.chatRepo.LastMessage(chat.ID); err == nil {
			row["last_message"] = last
		}
		if unread, err := h.chatRepo.CountUnread(chat.ID, callerID); err == nil {
			row["unread"] = unread
		}
		out[i] = row
	}
	c.JSON(http.StatusOK, gin.H{"chats": out})
}

// Messages returns the ordered message sequence of one chat.
func (h *ChatHandler) Messages(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	chatID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	chat, err := h.chatRepo.GetByID(uint(chatID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}
	if !chat.HasParticipant(callerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not part of this chat"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	msgs, err := h.chatRepo.ListMessages(chat.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MarkRead flips the read flag on every counterpart message in the chat.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	chatID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	chat, err := h.chatRepo.GetByID(uint(chatID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}
	if !chat.HasParticipant(callerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not part of this chat"})
		return
	}
	if err := h.chatRepo.MarkRead(chat.ID, callerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
