package models

import (
	"time"

	"gorm.io/gorm"
)

// VibeEcho is a short user-authored post with an associated mood tag.
type VibeEcho struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Mood      string         `gorm:"size:32;index" json:"mood"`
	MediaURL  string         `gorm:"size:512" json:"media_url"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (VibeEcho) TableName() string { return "vibe_echoes" }

// EchoLike is unique per (echo, user); liking twice is a no-op. No soft
// delete: unlike frees the unique row so the echo can be liked again.
type EchoLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EchoID    uint      `gorm:"not null;index:idx_echo_like,unique" json:"echo_id"`
	UserID    uint      `gorm:"not null;index:idx_echo_like,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Echo VibeEcho `gorm:"foreignKey:EchoID" json:"-"`
	User User     `gorm:"foreignKey:UserID" json:"-"`
}

func (EchoLike) TableName() string { return "echo_likes" }

type EchoComment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EchoID    uint           `gorm:"not null;index" json:"echo_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Echo VibeEcho `gorm:"foreignKey:EchoID" json:"-"`
	User User     `gorm:"foreignKey:UserID" json:"-"`
}

func (EchoComment) TableName() string { return "echo_comments" }
