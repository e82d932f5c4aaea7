package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/services"
)

// Sweeper periodically ends active rooms whose session window elapsed.
// Sessions themselves are never auto-expired; only the ephemeral room
// resource is reclaimed.
type Sweeper struct {
	rooms    *services.RoomService
	interval time.Duration
	grace    time.Duration
}

func NewSweeper(rooms *services.RoomService, interval, grace time.Duration) *Sweeper {
	return &Sweeper{rooms: rooms, interval: interval, grace: grace}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Dur("grace", s.grace).Msg("room sweeper started")

	for {
		select {
		case <-ticker.C:
			if swept := s.rooms.SweepExpired(ctx, s.grace); swept > 0 {
				log.Info().Int("swept", swept).Msg("ended expired rooms")
			}
		case <-ctx.Done():
			log.Info().Msg("room sweeper stopped")
			return
		}
	}
}
