package service

import (
	"context"
	"log"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/pkg/presence"
)

// PresenceSweeper periodically marks users offline once their heartbeat is
// older than the offline threshold. It is the server-side counterpart of the
// client heartbeat: a client that stops reporting simply ages out. The
// sweeper's lifetime is tied to the context it runs under.
type PresenceSweeper struct {
	users    *repository.UserRepository
	interval time.Duration
}

func NewPresenceSweeper(users *repository.UserRepository, interval time.Duration) *PresenceSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PresenceSweeper{users: users, interval: interval}
}

// Run blocks until ctx is cancelled.
func (s *PresenceSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-presence.OfflineWindow)
			n, err := s.users.SweepStale(cutoff)
			if err != nil {
				log.Printf("[presence] sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[presence] marked %d stale users offline", n)
			}
		}
	}
}
