package presence_test

import (
	"testing"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/pkg/presence"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("RecentHeartbeatIsOnline", func(t *testing.T) {
		got := presence.Classify(true, now.Add(-2*time.Minute), now)
		assert.Equal(t, presence.StateOnline, got)
	})

	t.Run("ExactOnlineBoundary", func(t *testing.T) {
		got := presence.Classify(true, now.Add(-presence.OnlineWindow), now)
		assert.Equal(t, presence.StateOnline, got)
	})

	t.Run("BetweenWindowsIsAway", func(t *testing.T) {
		got := presence.Classify(true, now.Add(-12*time.Minute), now)
		assert.Equal(t, presence.StateAway, got)
	})

	t.Run("ExactOfflineBoundaryIsAway", func(t *testing.T) {
		got := presence.Classify(true, now.Add(-presence.OfflineWindow), now)
		assert.Equal(t, presence.StateAway, got)
	})

	t.Run("StaleHeartbeatIsOffline", func(t *testing.T) {
		got := presence.Classify(true, now.Add(-45*time.Minute), now)
		assert.Equal(t, presence.StateOffline, got)
	})

	t.Run("FlagFalseDominatesRecency", func(t *testing.T) {
		got := presence.Classify(false, now.Add(-time.Second), now)
		assert.Equal(t, presence.StateOffline, got)
	})

	t.Run("FutureTimestampIsOnline", func(t *testing.T) {
		// Clock skew between client and server must not demote the user.
		got := presence.Classify(true, now.Add(3*time.Minute), now)
		assert.Equal(t, presence.StateOnline, got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		last := now.Add(-10 * time.Minute)
		first := presence.Classify(true, last, now)
		second := presence.Classify(true, last, now)
		assert.Equal(t, first, second)
	})
}

func TestActivityLabel(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Active now", presence.ActivityLabel(now.Add(-time.Minute), now))
	assert.Equal(t, "Active 12m ago", presence.ActivityLabel(now.Add(-12*time.Minute), now))
	assert.Equal(t, "Active 3h ago", presence.ActivityLabel(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Offline", presence.ActivityLabel(now.Add(-48*time.Hour), now))
}
