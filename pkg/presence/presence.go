package presence

import (
	"fmt"
	"time"
)

// State is the derived online/away/offline classification.
type State string

const (
	StateOnline  State = "online"
	StateAway    State = "away"
	StateOffline State = "offline"
)

// Heartbeat recency thresholds. Fixed; no configuration surface.
const (
	OnlineWindow  = 5 * time.Minute
	OfflineWindow = 30 * time.Minute
)

// Classify maps the stored online flag and last heartbeat to a State.
// isOnline == false always yields offline regardless of recency.
// A lastActive in the future (clock skew) yields a negative elapsed time,
// which classifies as online.
func Classify(isOnline bool, lastActive, now time.Time) State {
	if !isOnline {
		return StateOffline
	}
	elapsed := now.Sub(lastActive)
	switch {
	case elapsed <= OnlineWindow:
		return StateOnline
	case elapsed <= OfflineWindow:
		return StateAway
	default:
		return StateOffline
	}
}

// ActivityLabel renders a human-readable activity string from heartbeat
// recency, e.g. "Active now" or "Active 12m ago".
func ActivityLabel(lastActive, now time.Time) string {
	elapsed := now.Sub(lastActive)
	switch {
	case elapsed <= OnlineWindow:
		return "Active now"
	case elapsed < time.Hour:
		return fmt.Sprintf("Active %dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("Active %dh ago", int(elapsed.Hours()))
	default:
		return "Offline"
	}
}
