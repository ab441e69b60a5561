package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/handler"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubNearbyStore struct {
	mock.Mock
}

func (s *stubNearbyStore) FindCandidates(lat, lng, radiusKm float64, excludeUserID uint) ([]repository.NearbyCandidate, error) {
	args := s.Called(lat, lng, radiusKm, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.NearbyCandidate), args.Error(1)
}

func nearbyRouter(store service.NearbyStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewNearbyService(store, config.DiscoveryConfig{DefaultRadiusKm: 10, MaxRadiusKm: 100})
	h := handler.NewNearbyHandler(svc)
	r := gin.New()
	r.GET("/map/nearby", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		h.Nearby(c)
	})
	return r
}

func TestNearbyEndpoint(t *testing.T) {
	t.Run("MissingCoordinatesRejected", func(t *testing.T) {
		r := nearbyRouter(new(stubNearbyStore))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/map/nearby", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("StorageFailureReturnsEmptyResults", func(t *testing.T) {
		store := new(stubNearbyStore)
		store.On("FindCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db down"))
		r := nearbyRouter(store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/map/nearby?lat=0&lng=0", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Results []json.RawMessage `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Empty(t, body.Results)
	})

	t.Run("ResultsIncludeDerivedFields", func(t *testing.T) {
		store := new(stubNearbyStore)
		store.On("FindCandidates", 0.0, 0.0, 10.0, uint(1)).
			Return([]repository.NearbyCandidate{{
				UserID:       2,
				Username:     "bob",
				DisplayName:  "Bob",
				Latitude:     0,
				Longitude:    0.02,
				IsOnline:     true,
				LastActiveAt: time.Now(),
			}}, nil)
		r := nearbyRouter(store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/map/nearby?lat=0&lng=0&radius_km=10", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			RadiusKm float64 `json:"radius_km"`
			Results  []struct {
				ID             uint    `json:"id"`
				DistanceKm     float64 `json:"distance_km"`
				Presence       string  `json:"presence"`
				ProximityLabel string  `json:"proximity_label"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 10.0, body.RadiusKm)
		require.Len(t, body.Results, 1)
		assert.Equal(t, uint(2), body.Results[0].ID)
		assert.Equal(t, "online", body.Results[0].Presence)
		assert.Equal(t, "Very close", body.Results[0].ProximityLabel)
		assert.InDelta(t, 2.2, body.Results[0].DistanceKm, 0.2)
	})
}
