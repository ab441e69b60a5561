package domain

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionBlocked  = "blocked"
)

const (
	NotifTypeConnectRequest  = "connect_request"
	NotifTypeConnectAccepted = "connect_accepted"
	NotifTypeLike            = "like"
	NotifTypeComment         = "comment"
	NotifTypeMessage         = "message"
	NotifTypeCommunity       = "community_created"
)

// Mood labels a Vibe Echo or a profile can carry. Free-text mood messages
// are stored alongside; this list only drives UI chips.
var Moods = []string{"happy", "chill", "hyped", "curious", "blue", "focused"}

// ValidMood reports whether m is one of the known mood labels.
func ValidMood(m string) bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// Search radius presets in km offered by the map UI.
var SearchRadiusKm = []float64{1, 3, 5, 10, 25, 50}
