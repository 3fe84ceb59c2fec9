package room

import (
	"sync"
	"time"
)

const defaultPlayerTimeout = 15 * time.Second

// Registry owns every live room in the process. Room state is only reachable
// through its methods, which run each operation under that room's lock.
type Registry struct {
	mu            sync.Mutex
	rooms         map[string]*Room
	questions     QuestionSource
	playerTimeout time.Duration
	idleTimeout   time.Duration
	maxPlayers    int
	now           func() time.Time
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithPlayerTimeout sets how long a player may go without a heartbeat.
func WithPlayerTimeout(timeout time.Duration) Option {
	return func(r *Registry) {
		if timeout > 0 {
			r.playerTimeout = timeout
		}
	}
}

// WithIdleTimeout sets how long an empty room survives a Sweep.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(r *Registry) {
		if timeout > 0 {
			r.idleTimeout = timeout
		}
	}
}

// WithMaxPlayers caps room size. Zero means no ceiling.
func WithMaxPlayers(limit int) Option {
	return func(r *Registry) {
		if limit >= 0 {
			r.maxPlayers = limit
		}
	}
}

func NewRegistry(questions QuestionSource, opts ...Option) *Registry {
	r := &Registry{
		rooms:         make(map[string]*Room),
		questions:     questions,
		playerTimeout: defaultPlayerTimeout,
		idleTimeout:   30 * time.Minute,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Create(answerSeconds int, passcode string) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := randomID(roomIDLength)
	for {
		if _, exists := r.rooms[id]; !exists {
			break
		}
		id = randomID(roomIDLength)
	}
	room := &Room{
		ID:            id,
		Passcode:      passcode,
		AnswerSeconds: answerSeconds,
		lastActive:    r.now(),
	}
	r.rooms[id] = room
	return snapshot(room)
}

func (r *Registry) Get(id string) (View, bool) {
	room, ok := r.lookup(id)
	if !ok {
		return View{}, false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.deleted {
		return View{}, false
	}
	return snapshot(room), true
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	room, ok := r.rooms[id]
	delete(r.rooms, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	room.mu.Lock()
	room.deleted = true
	room.mu.Unlock()
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func (r *Registry) lookup(id string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	return room, ok
}

// withRoom runs fn under the room lock and returns the resulting snapshot.
// missing is returned when the room does not exist.
func (r *Registry) withRoom(id string, missing error, fn func(room *Room) error) (View, error) {
	room, ok := r.lookup(id)
	if !ok {
		return View{}, missing
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.deleted {
		return View{}, missing
	}
	if err := fn(room); err != nil {
		return View{}, err
	}
	room.lastActive = r.now()
	return snapshot(room), nil
}

// retire drops a room from the map. Caller holds room.mu.
func (r *Registry) retire(room *Room) {
	room.deleted = true
	r.mu.Lock()
	if r.rooms[room.ID] == room {
		delete(r.rooms, room.ID)
	}
	r.mu.Unlock()
}
