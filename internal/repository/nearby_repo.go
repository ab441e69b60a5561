package repository

import (
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/pkg/geo"

	"gorm.io/gorm"
)

// NearbyCandidate is one row of the candidate query: a public, online
// profile with coordinates inside the bounding box. The exact haversine
// filter and sort happen in the nearby service.
type NearbyCandidate struct {
	UserID       uint
	Username     string
	DisplayName  string
	AvatarURL    string
	Mood         string
	MoodMessage  string
	VibeScore    int
	Latitude     float64
	Longitude    float64
	IsOnline     bool
	LastActiveAt time.Time
}

// NearbyRepository fetches candidate profiles for the nearby map.
type NearbyRepository struct {
	db *gorm.DB
}

func NewNearbyRepository(db *gorm.DB) *NearbyRepository {
	return &NearbyRepository{db: db}
}

// FindCandidates returns profiles that (a) have non-null coordinates,
// (b) are public, (c) are online, (d) fall inside the ±radius bounding box,
// excluding the caller and anyone in a block relation with the caller.
// A bounding box over-selects near the corners; callers must still apply
// the exact radius filter.
func (r *NearbyRepository) FindCandidates(lat, lng, radiusKm float64, excludeUserID uint) ([]NearbyCandidate, error) {
	delta := geo.DegreesForKm(radiusKm)
	latMin, latMax := lat-delta, lat+delta
	lngMin, lngMax := lng-delta, lng+delta

	var rows []NearbyCandidate
	err := r.db.Table("users u").
		Select(`u.id as user_id, u.username, u.display_name, u.avatar_url,
			u.mood, u.mood_message, u.vibe_score,
			u.latitude, u.longitude, u.is_online, u.last_active_at`).
		Where("u.deleted_at IS NULL AND u.deactivated_at IS NULL").
		Where("u.id <> ?", excludeUserID).
		Where("u.visibility = ?", domain.VisibilityPublic).
		Where("u.is_online = ?", true).
		Where("u.latitude IS NOT NULL AND u.longitude IS NOT NULL").
		Where("u.latitude BETWEEN ? AND ? AND u.longitude BETWEEN ? AND ?", latMin, latMax, lngMin, lngMax).
		Where(`NOT EXISTS (
			SELECT 1 FROM blocks b
			WHERE (b.blocker_id = ? AND b.blocked_id = u.id) OR (b.blocker_id = u.id AND b.blocked_id = ?)
		)`, excludeUserID, excludeUserID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkerCandidates returns the current online public profiles with
// coordinates, used to seed the live map channel.
func (r *NearbyRepository) MarkerCandidates() ([]NearbyCandidate, error) {
	var rows []NearbyCandidate
	err := r.db.Model(&models.User{}).
		Select(`id as user_id, username, display_name, avatar_url,
			mood, mood_message, vibe_score,
			latitude, longitude, is_online, last_active_at`).
		Where("deactivated_at IS NULL").
		Where("visibility = ?", domain.VisibilityPublic).
		Where("is_online = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Scan(&rows).Error
	return rows, err
}
