package service

import (
	"log"
	"sort"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/pkg/geo"
	"github.com/reehan7086/EchoVibe-sub000/pkg/presence"
)

// MapUser is a profile enriched at query time with computed distance,
// presence state, and activity label. Derived only; never persisted.
type MapUser struct {
	ID          uint           `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	AvatarURL   string         `json:"avatar_url"`
	Mood        string         `json:"mood"`
	MoodMessage string         `json:"mood_message"`
	VibeScore   int            `json:"vibe_score"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	DistanceKm  float64        `json:"distance_km"`
	Presence    presence.State `json:"presence"`
	Activity    string         `json:"activity"`
}

// NearbyStore is the candidate source for the nearby query.
type NearbyStore interface {
	FindCandidates(lat, lng, radiusKm float64, excludeUserID uint) ([]repository.NearbyCandidate, error)
}

type NearbyService struct {
	store NearbyStore
	cfg   config.DiscoveryConfig
	now   func() time.Time
}

func NewNearbyService(store NearbyStore, cfg config.DiscoveryConfig) *NearbyService {
	return &NearbyService{store: store, cfg: cfg, now: time.Now}
}

// NewNearbyServiceAt injects the clock, for deterministic presence in tests.
func NewNearbyServiceAt(store NearbyStore, cfg config.DiscoveryConfig, now func() time.Time) *NearbyService {
	return &NearbyService{store: store, cfg: cfg, now: now}
}

// ClampRadius applies the configured default and maximum search radius.
func (s *NearbyService) ClampRadius(radiusKm float64) float64 {
	if radiusKm <= 0 {
		return s.cfg.DefaultRadiusKm
	}
	if radiusKm > s.cfg.MaxRadiusKm {
		return s.cfg.MaxRadiusKm
	}
	return radiusKm
}

// Nearby returns every public, online candidate within radiusKm of the
// caller, sorted ascending by distance, never including the caller. A
// storage failure degrades to an empty list; the map shows nobody rather
// than an error.
func (s *NearbyService) Nearby(callerID uint, lat, lng, radiusKm float64) []MapUser {
	radiusKm = s.ClampRadius(radiusKm)
	candidates, err := s.store.FindCandidates(lat, lng, radiusKm, callerID)
	if err != nil {
		log.Printf("[nearby] candidate query failed: %v", err)
		return []MapUser{}
	}
	now := s.now()
	out := make([]MapUser, 0, len(candidates))
	for _, c := range candidates {
		if c.UserID == callerID {
			continue
		}
		dist := geo.HaversineKm(lat, lng, c.Latitude, c.Longitude)
		if dist > radiusKm {
			continue
		}
		out = append(out, MapUser{
			ID:          c.UserID,
			Username:    c.Username,
			DisplayName: c.DisplayName,
			AvatarURL:   c.AvatarURL,
			Mood:        c.Mood,
			MoodMessage: c.MoodMessage,
			VibeScore:   c.VibeScore,
			Latitude:    c.Latitude,
			Longitude:   c.Longitude,
			DistanceKm:  dist,
			Presence:    presence.Classify(c.IsOnline, c.LastActiveAt, now),
			Activity:    presence.ActivityLabel(c.LastActiveAt, now),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
