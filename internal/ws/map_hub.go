package ws

import (
	"time"
)

// MapMarker is one live position on the nearby map.
type MapMarker struct {
	UserID      uint    `json:"user_id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   string  `json:"avatar_url"`
	Mood        string  `json:"mood"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	IsOnline    bool    `json:"is_online"`
	UpdatedAt   int64   `json:"updated_at"`
}

// MapHub streams live markers to map viewers. Location reports push through
// UpdateMarker; viewers get a snapshot on connect and deltas afterwards.
type MapHub struct {
	*Hub
	markers *markerSet
}

func NewMapHub() *MapHub {
	return &MapHub{
		Hub:     NewHub(),
		markers: newMarkerSet(),
	}
}

// UpdateMarker records the user's latest position and fans it out to every
// connected viewer.
func (m *MapHub) UpdateMarker(userID uint, displayName, avatarURL, mood string, lat, lng float64, isOnline bool) {
	marker := MapMarker{
		UserID:      userID,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		Mood:        mood,
		Lat:         lat,
		Lng:         lng,
		IsOnline:    isOnline,
		UpdatedAt:   time.Now().Unix(),
	}
	m.markers.put(marker)
	m.BroadcastAll(map[string]interface{}{"type": "marker", "marker": marker})
}

// Seed loads markers into the set without broadcasting. Used at startup to
// rebuild the snapshot from storage so the first viewer after a restart
// does not see an empty map.
func (m *MapHub) Seed(markers []MapMarker) {
	for _, mk := range markers {
		m.markers.put(mk)
	}
}

// RemoveMarker drops a user from the live map (logout, visibility change).
func (m *MapHub) RemoveMarker(userID uint) {
	if m.markers.remove(userID) {
		m.BroadcastAll(map[string]interface{}{"type": "marker_removed", "user_id": userID})
	}
}

// Snapshot returns current markers for online users, for the initial load.
func (m *MapHub) Snapshot() []MapMarker {
	return m.markers.online()
}
