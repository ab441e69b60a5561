package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"
	"github.com/reehan7086/EchoVibe-sub000/pkg/proximity"

	"github.com/gin-gonic/gin"
)

type NearbyHandler struct {
	svc *service.NearbyService
}

func NewNearbyHandler(svc *service.NearbyService) *NearbyHandler {
	return &NearbyHandler{svc: svc}
}

// Nearby returns map users around the caller's reported position, closest
// first. A storage failure yields an empty result, not an error.
func (h *NearbyHandler) Nearby(c *gin.Context) {
	callerID := middleware.GetUserID(c)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	radiusKm, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)
	radiusKm = h.svc.ClampRadius(radiusKm)

	users := h.svc.Nearby(callerID, lat, lng, radiusKm)
	out := make([]gin.H, len(users))
	for i, u := range users {
		progress := proximity.Progress(u.DistanceKm, radiusKm)
		out[i] = gin.H{
			"id":              u.ID,
			"username":        u.Username,
			"display_name":    u.DisplayName,
			"avatar_url":      u.AvatarURL,
			"mood":            u.Mood,
			"mood_message":    u.MoodMessage,
			"vibe_score":      u.VibeScore,
			"latitude":        u.Latitude,
			"longitude":       u.Longitude,
			"distance_km":     math.Round(u.DistanceKm*10) / 10,
			"presence":        u.Presence,
			"activity":        u.Activity,
			"proximity_label": proximity.Label(progress),
		}
	}
	c.JSON(http.StatusOK, gin.H{"radius_km": radiusKm, "results": out})
}
