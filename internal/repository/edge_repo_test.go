package repository_test

import (
	"testing"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/database"
	"github.com/reehan7086/EchoVibe-sub000/internal/domain"
	"github.com/reehan7086/EchoVibe-sub000/internal/models"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, online, public bool, lat, lng *float64) uint {
	t.Helper()
	visibility := domain.VisibilityPrivate
	if public {
		visibility = domain.VisibilityPublic
	}
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		DisplayName:  username,
		Visibility:   visibility,
		IsOnline:     online,
		LastActiveAt: time.Now(),
		Latitude:     lat,
		Longitude:    lng,
	}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

func TestConnectionEdgeRecreatedAfterRemoval(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewConnectionRepository(db)

	conn := &models.Connection{RequesterID: 1, AddresseeID: 2, Status: domain.ConnectionPending}
	require.NoError(t, repo.Create(conn))
	require.NoError(t, repo.Delete(conn))

	// Decline then re-request, this time from the other side. The pair
	// index must not remember the removed edge.
	again := &models.Connection{RequesterID: 2, AddresseeID: 1, Status: domain.ConnectionPending}
	require.NoError(t, repo.Create(again))

	got, err := repo.GetBetween(1, 2)
	require.NoError(t, err)
	assert.Equal(t, again.ID, got.ID)
	assert.Equal(t, domain.ConnectionPending, got.Status)
}

func TestEchoLikeAgainAfterUnlike(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewEchoRepository(db)

	created, err := repo.Like(10, 1)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Like(10, 1)
	require.NoError(t, err)
	assert.False(t, created, "second like must be a no-op")

	require.NoError(t, repo.Unlike(10, 1))

	created, err = repo.Like(10, 1)
	require.NoError(t, err)
	assert.True(t, created, "re-like after unlike must create a fresh row")
}

func TestCommunityRejoinAfterLeave(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewCommunityRepository(db)

	c := &models.Community{Name: "go-hikers", CreatorID: 1}
	require.NoError(t, repo.Create(c))

	require.NoError(t, repo.Join(c.ID, 2))
	require.NoError(t, repo.Leave(c.ID, 2))
	require.NoError(t, repo.Join(c.ID, 2))

	member, err := repo.IsMember(c.ID, 2)
	require.NoError(t, err)
	assert.True(t, member)

	got, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)
}

func TestBlockAgainAfterUnblock(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSafetyRepository(db)

	require.NoError(t, repo.Block(1, 2))
	require.NoError(t, repo.Unblock(1, 2))

	blocked, err := repo.IsBlockedEither(1, 2)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, repo.Block(1, 2))
	blocked, err = repo.IsBlockedEither(1, 2)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestMarkerCandidates(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewNearbyRepository(db)
	lat, lng := 12.5, 77.6

	visible := seedUser(t, db, "visible", true, true, &lat, &lng)
	seedUser(t, db, "offline", false, true, &lat, &lng)
	seedUser(t, db, "hidden", true, false, &lat, &lng)
	seedUser(t, db, "nowhere", true, true, nil, nil)

	rows, err := repo.MarkerCandidates()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, visible, rows[0].UserID)
	assert.Equal(t, lat, rows[0].Latitude)
}
