package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserHasCoordinates(t *testing.T) {
	lat, lng := 12.5, 77.6

	u := User{}
	assert.False(t, u.HasCoordinates())

	u.Latitude = &lat
	assert.False(t, u.HasCoordinates(), "half-set pair must not count")

	u.Longitude = &lng
	assert.True(t, u.HasCoordinates())
}

func TestUserPublicOmitsSensitiveFields(t *testing.T) {
	u := User{
		ID:           1,
		Email:        "a@b.com",
		Username:     "alice",
		PasswordHash: "secret-hash",
		DisplayName:  "Alice",
	}
	out := u.Public()
	assert.Equal(t, "alice", out["username"])
	assert.NotContains(t, out, "email")
	assert.NotContains(t, out, "password_hash")
}

func TestConnectionEndpoints(t *testing.T) {
	c := Connection{RequesterID: 1, AddresseeID: 2}
	assert.True(t, c.Involves(1))
	assert.True(t, c.Involves(2))
	assert.False(t, c.Involves(3))
	assert.Equal(t, uint(2), c.OtherSide(1))
	assert.Equal(t, uint(1), c.OtherSide(2))
}

func TestChatParticipants(t *testing.T) {
	c := Chat{UserAID: 1, UserBID: 2}
	assert.True(t, c.HasParticipant(1))
	assert.True(t, c.HasParticipant(2))
	assert.False(t, c.HasParticipant(3))
	assert.Equal(t, uint(2), c.Counterpart(1))
	assert.Equal(t, uint(1), c.Counterpart(2))
}

func TestNotificationReadState(t *testing.T) {
	n := Notification{}
	assert.Nil(t, n.ReadAt)
	now := time.Now()
	n.ReadAt = &now
	assert.NotNil(t, n.ReadAt)
}
