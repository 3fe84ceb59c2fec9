package server

import (
	"context"
	"log"
	"time"
)

// RunSweeper periodically clears stale players and empty rooms until ctx is
// done. Rooms stay correct without it; it only frees memory sooner.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.rooms.Sweep(); removed > 0 {
				log.Printf("rooms swept removed=%d remaining=%d", removed, s.rooms.Count())
			}
		}
	}
}
