package models

import (
	"time"

	"gorm.io/gorm"
)

type Community struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	AvatarURL   string         `gorm:"size:512" json:"avatar_url"`
	CreatorID   uint           `gorm:"not null;index" json:"creator_id"`
	MemberCount int            `gorm:"default:0" json:"member_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (Community) TableName() string { return "communities" }

// CommunityMember has no soft delete: leaving frees the unique pair row so
// the user can rejoin.
type CommunityMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CommunityID uint      `gorm:"not null;index:idx_community_member,unique" json:"community_id"`
	UserID      uint      `gorm:"not null;index:idx_community_member,unique" json:"user_id"`
	JoinedAt    time.Time `json:"joined_at"`
	CreatedAt   time.Time `json:"created_at"`

	Community Community `gorm:"foreignKey:CommunityID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (CommunityMember) TableName() string { return "community_members" }
