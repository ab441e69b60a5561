package models

import "time"

// Connection is a single bidirectional edge between two users. RequesterID
// is whoever initiated; at most one row exists per unordered pair, which
// ConnectionRepository enforces by checking both orientations before insert.
// No soft delete: a declined or removed edge must free the unique pair
// index so the pair can connect again later.
type Connection struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RequesterID uint       `gorm:"not null;index:idx_conn_pair,unique" json:"requester_id"`
	AddresseeID uint       `gorm:"not null;index:idx_conn_pair,unique" json:"addressee_id"`
	Status      string     `gorm:"size:16;not null;index" json:"status"` // pending | accepted | blocked
	AcceptedAt  *time.Time `json:"accepted_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"-"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"-"`
}

func (Connection) TableName() string {
	return "connections"
}

// Involves reports whether userID is either endpoint of the edge.
func (c *Connection) Involves(userID uint) bool {
	return c.RequesterID == userID || c.AddresseeID == userID
}

// OtherSide returns the counterpart of userID on this edge.
func (c *Connection) OtherSide(userID uint) uint {
	if c.RequesterID == userID {
		return c.AddresseeID
	}
	return c.RequesterID
}
