package handler

import (
	"net/http"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/ws"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo *repository.UserRepository
	connRepo *repository.ConnectionRepository
	cfg      *config.Config
	mapHub   *ws.MapHub
}

func NewMeHandler(userRepo *repository.UserRepository, connRepo *repository.ConnectionRepository, cfg *config.Config, mapHub *ws.MapHub) *MeHandler {
	return &MeHandler{userRepo: userRepo, connRepo: connRepo, cfg: cfg, mapHub: mapHub}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	connections, _ := h.connRepo.CountAccepted(userID)
	c.JSON(http.StatusOK, gin.H{
		"user":                     u,
		"connections":              connections,
		"heartbeat_interval_sec":   int(h.cfg.Discovery.HeartbeatInterval.Seconds()),
		"map_refresh_interval_sec": int(h.cfg.Discovery.MapRefreshInterval.Seconds()),
		"moods":                    domain.Moods,
		"search_radius_presets_km": domain.SearchRadiusKm,
	})
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	Mood        *string `json:"mood"`
	MoodMessage *string `json:"mood_message"`
	Visibility  *string `json:"visibility" binding:"omitempty,oneof=public private"`
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mood != nil && *req.Mood != "" && !domain.ValidMood(*req.Mood) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mood"})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}
	if req.Mood != nil {
		u.Mood = *req.Mood
	}
	if req.MoodMessage != nil {
		u.MoodMessage = *req.MoodMessage
	}
	wentPrivate := false
	if req.Visibility != nil {
		wentPrivate = *req.Visibility == domain.VisibilityPrivate && u.Visibility == domain.VisibilityPublic
		u.Visibility = *req.Visibility
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if wentPrivate && h.mapHub != nil {
		h.mapHub.RemoveMarker(userID)
	}
	c.JSON(http.StatusOK, u)
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// UpdateLocation stores the reported position plus a fresh heartbeat, and
// pushes a live marker when the profile is public. Latitude and longitude
// must arrive together; the stored pair is never half-updated.
func (h *MeHandler) UpdateLocation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are both required"})
		return
	}
	now := time.Now()
	if err := h.userRepo.UpdateLocation(userID, *req.Latitude, *req.Longitude, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if h.mapHub != nil {
		if u, err := h.userRepo.GetByID(userID); err == nil && u.IsPublic() {
			h.mapHub.UpdateMarker(u.ID, u.DisplayName, u.AvatarURL, u.Mood, *req.Latitude, *req.Longitude, true)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "last_active_at": now})
}

func (h *MeHandler) GetMyLocation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || !u.HasCoordinates() {
		c.JSON(http.StatusOK, gin.H{"latitude": nil, "longitude": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"latitude":       u.Latitude,
		"longitude":      u.Longitude,
		"last_active_at": u.LastActiveAt,
	})
}

// Heartbeat refreshes the caller's last-active timestamp and online flag.
// Clients call this on the configured cadence; a stalled client ages out
// via the presence sweeper.
func (h *MeHandler) Heartbeat(c *gin.Context) {
	userID := middleware.GetUserID(c)
	now := time.Now()
	if err := h.userRepo.Heartbeat(userID, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "heartbeat failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "last_active_at": now})
}

// Deactivate soft-disables the account; profiles are never hard-deleted.
func (h *MeHandler) Deactivate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.userRepo.Deactivate(userID, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deactivation failed"})
		return
	}
	if h.mapHub != nil {
		h.mapHub.RemoveMarker(userID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
