package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"
	"github.com/reehan7086/EchoVibe-sub000/pkg/presence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNearbyStore struct {
	mock.Mock
}

func (m *MockNearbyStore) FindCandidates(lat, lng, radiusKm float64, excludeUserID uint) ([]repository.NearbyCandidate, error) {
	args := m.Called(lat, lng, radiusKm, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.NearbyCandidate), args.Error(1)
}

func discoveryCfg() config.DiscoveryConfig {
	return config.DiscoveryConfig{
		DefaultRadiusKm: 10,
		MaxRadiusKm:     100,
	}
}

func candidate(id uint, lat, lng float64, lastActive time.Time) repository.NearbyCandidate {
	return repository.NearbyCandidate{
		UserID:       id,
		Username:     "user",
		DisplayName:  "User",
		Latitude:     lat,
		Longitude:    lng,
		IsOnline:     true,
		LastActiveAt: lastActive,
	}
}

func TestClampRadius(t *testing.T) {
	svc := service.NewNearbyService(new(MockNearbyStore), discoveryCfg())

	assert.Equal(t, 10.0, svc.ClampRadius(0))
	assert.Equal(t, 10.0, svc.ClampRadius(-5))
	assert.Equal(t, 25.0, svc.ClampRadius(25))
	assert.Equal(t, 100.0, svc.ClampRadius(500))
}

func TestNearby(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("StorageErrorYieldsEmptyList", func(t *testing.T) {
		store := new(MockNearbyStore)
		store.On("FindCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))
		svc := service.NewNearbyService(store, discoveryCfg())

		got := svc.Nearby(1, 0, 0, 10)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("SortedAscendingByDistance", func(t *testing.T) {
		store := new(MockNearbyStore)
		// 0.05 deg lng at the equator is about 5.6 km; 0.02 about 2.2 km.
		store.On("FindCandidates", 0.0, 0.0, 10.0, uint(1)).
			Return([]repository.NearbyCandidate{
				candidate(2, 0, 0.05, now),
				candidate(3, 0, 0.02, now),
			}, nil)
		svc := service.NewNearbyService(store, discoveryCfg())

		got := svc.Nearby(1, 0, 0, 10)
		assert.Len(t, got, 2)
		assert.Equal(t, uint(3), got[0].ID)
		assert.Equal(t, uint(2), got[1].ID)
		assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	})

	t.Run("CallerNeverIncluded", func(t *testing.T) {
		store := new(MockNearbyStore)
		store.On("FindCandidates", 0.0, 0.0, 10.0, uint(1)).
			Return([]repository.NearbyCandidate{
				candidate(1, 0, 0.001, now),
				candidate(2, 0, 0.01, now),
			}, nil)
		svc := service.NewNearbyService(store, discoveryCfg())

		got := svc.Nearby(1, 0, 0, 10)
		assert.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("BoundingBoxCornersFilteredByExactRadius", func(t *testing.T) {
		store := new(MockNearbyStore)
		// The corner candidate survives the SQL box but sits about 14 km out.
		store.On("FindCandidates", 0.0, 0.0, 10.0, uint(1)).
			Return([]repository.NearbyCandidate{
				candidate(2, 0.09, 0.09, now),
				candidate(3, 0, 0.05, now),
			}, nil)
		svc := service.NewNearbyService(store, discoveryCfg())

		got := svc.Nearby(1, 0, 0, 10)
		assert.Len(t, got, 1)
		assert.Equal(t, uint(3), got[0].ID)
	})

	t.Run("RadiusClampedBeforeQuery", func(t *testing.T) {
		store := new(MockNearbyStore)
		store.On("FindCandidates", 0.0, 0.0, 100.0, uint(1)).
			Return([]repository.NearbyCandidate{}, nil)
		svc := service.NewNearbyService(store, discoveryCfg())

		got := svc.Nearby(1, 0, 0, 9999)
		assert.Empty(t, got)
		store.AssertCalled(t, "FindCandidates", 0.0, 0.0, 100.0, uint(1))
	})

	t.Run("PresenceDerivedFromHeartbeat", func(t *testing.T) {
		store := new(MockNearbyStore)
		store.On("FindCandidates", 0.0, 0.0, 10.0, uint(1)).
			Return([]repository.NearbyCandidate{
				candidate(2, 0, 0.01, now.Add(-2*time.Minute)),
				candidate(3, 0, 0.02, now.Add(-12*time.Minute)),
			}, nil)
		svc := service.NewNearbyServiceAt(store, discoveryCfg(), func() time.Time { return now })

		got := svc.Nearby(1, 0, 0, 10)
		assert.Len(t, got, 2)
		assert.Equal(t, presence.StateOnline, got[0].Presence)
		assert.Equal(t, presence.StateAway, got[1].Presence)
		assert.Equal(t, "Active now", got[0].Activity)
	})
}
