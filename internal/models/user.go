package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the persisted profile record. Coordinates are pointers so a user
// who never shared location stays distinguishable from one at (0,0);
// Latitude and Longitude are always both nil or both set.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email         string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string         `gorm:"size:255" json:"-"`
	DisplayName   string         `gorm:"size:128" json:"display_name"`
	AvatarURL     string         `gorm:"size:512" json:"avatar_url"`
	GoogleID      *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	Bio           string         `gorm:"type:text" json:"bio"`
	Mood          string         `gorm:"size:32" json:"mood"`
	MoodMessage   string         `gorm:"size:255" json:"mood_message"`
	Visibility    string         `gorm:"size:16;not null;default:'public';index" json:"visibility"`
	VibeScore     int            `gorm:"default:0" json:"vibe_score"`
	Latitude      *float64       `gorm:"type:decimal(10,8);index:idx_users_lat_lng" json:"latitude"`
	Longitude     *float64       `gorm:"type:decimal(11,8);index:idx_users_lat_lng" json:"longitude"`
	IsOnline      bool           `gorm:"default:false;index" json:"is_online"`
	LastActiveAt  time.Time      `gorm:"not null;index" json:"last_active_at"`
	DeactivatedAt *time.Time     `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}

func (u *User) IsPublic() bool { return u.Visibility == "public" }

// Public returns the subset of fields safe to show other users.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"username":     u.Username,
		"display_name": u.DisplayName,
		"avatar_url":   u.AvatarURL,
		"bio":          u.Bio,
		"mood":         u.Mood,
		"mood_message": u.MoodMessage,
		"vibe_score":   u.VibeScore,
	}
}
