package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/pkg/presence"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userRepo   *repository.UserRepository
	safetyRepo *repository.SafetyRepository
	connRepo   *repository.ConnectionRepository
}

func NewProfileHandler(userRepo *repository.UserRepository, safetyRepo *repository.SafetyRepository, connRepo *repository.ConnectionRepository) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, safetyRepo: safetyRepo, connRepo: connRepo}
}

// Get returns another user's public view, including derived presence and
// any connection edge between the caller and the subject.
func (h *ProfileHandler) Get(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil || u.DeactivatedAt != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if blocked, _ := h.safetyRepo.IsBlockedEither(callerID, u.ID); blocked {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if u.Visibility == domain.VisibilityPrivate && u.ID != callerID {
		c.JSON(http.StatusOK, gin.H{
			"user":    gin.H{"id": u.ID, "username": u.Username, "visibility": u.Visibility},
			"private": true,
		})
		return
	}
	now := time.Now()
	out := u.Public()
	out["presence"] = presence.Classify(u.IsOnline, u.LastActiveAt, now)
	out["activity"] = presence.ActivityLabel(u.LastActiveAt, now)

	resp := gin.H{"user": out}
	if conn, err := h.connRepo.GetBetween(callerID, u.ID); err == nil {
		resp["connection"] = conn
	}
	c.JSON(http.StatusOK, resp)
}

// Search finds users by username or display name.
func (h *ProfileHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query too short"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	users, err := h.userRepo.Search(q, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":           u.ID,
			"username":     u.Username,
			"display_name": u.DisplayName,
			"avatar_url":   u.AvatarURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}
