package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a conversation container for exactly two participants. One row
// per pair; ChatRepository canonicalises so UserAID < UserBID.
type Chat struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserAID   uint           `gorm:"not null;index:idx_chat_pair,unique" json:"user_a_id"`
	UserBID   uint           `gorm:"not null;index:idx_chat_pair,unique" json:"user_b_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserA User `gorm:"foreignKey:UserAID" json:"-"`
	UserB User `gorm:"foreignKey:UserBID" json:"-"`
}

func (Chat) TableName() string { return "chats" }

// HasParticipant reports whether userID belongs to this chat.
func (c *Chat) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// Counterpart returns the other participant of userID.
func (c *Chat) Counterpart(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// Message is append-only; only the Read flag mutates after creation.
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ChatID    uint           `gorm:"not null;index" json:"chat_id"`
	SenderID  uint           `gorm:"not null;index" json:"sender_id"`
	Content   string         `gorm:"type:text" json:"content"`
	MediaURL  string         `gorm:"size:512" json:"media_url"`
	Read      bool           `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Chat   Chat `gorm:"foreignKey:ChatID" json:"-"`
	Sender User `gorm:"foreignKey:SenderID" json:"-"`
}

func (Message) TableName() string { return "messages" }
