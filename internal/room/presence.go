package room

import "time"

// reap evicts players whose last heartbeat is at least playerTimeout old.
// Leadership is never handed to a survivor.
func (r *Registry) reap(room *Room, now time.Time) []string {
	var evicted []string
	kept := room.Players[:0]
	for _, player := range room.Players {
		if now.Sub(player.LastSeenAt) >= r.playerTimeout {
			evicted = append(evicted, player.ID)
			continue
		}
		kept = append(kept, player)
	}
	for i := len(kept); i < len(room.Players); i++ {
		room.Players[i] = nil
	}
	room.Players = kept
	return evicted
}

// Touch records a heartbeat. Unknown rooms and players are ignored.
func (r *Registry) Touch(roomID, playerID string) {
	room, ok := r.lookup(roomID)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.deleted {
		return
	}
	if player := room.findPlayer(playerID); player != nil {
		now := r.now()
		player.LastSeenAt = now
		room.lastActive = now
	}
}

// Sweep reaps stale players in every room and removes rooms that are left
// empty. It is optional; polling alone keeps rooms correct. It returns the
// number of rooms removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.Unlock()

	removed := 0
	now := r.now()
	for _, room := range rooms {
		room.mu.Lock()
		if !room.deleted {
			evicted := r.reap(room, now)
			idle := len(room.Players) == 0 && now.Sub(room.lastActive) >= r.idleTimeout
			if (len(evicted) > 0 && room.abandoned()) || idle {
				r.retire(room)
				removed++
			}
		}
		room.mu.Unlock()
	}
	return removed
}
