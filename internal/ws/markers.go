package ws

import "sync"

// markerSet is the in-memory latest-position table behind the map hub.
type markerSet struct {
	mu      sync.RWMutex
	markers map[uint]MapMarker
}

func newMarkerSet() *markerSet {
	return &markerSet{markers: make(map[uint]MapMarker)}
}

func (s *markerSet) put(m MapMarker) {
	s.mu.Lock()
	s.markers[m.UserID] = m
	s.mu.Unlock()
}

func (s *markerSet) remove(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[userID]; !ok {
		return false
	}
	delete(s.markers, userID)
	return true
}

func (s *markerSet) online() []MapMarker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]MapMarker, 0, len(s.markers))
	for _, m := range s.markers {
		if m.IsOnline {
			list = append(list, m)
		}
	}
	return list
}
