package room

import (
	"sync"
	"time"
)

type Status string

const (
	StatusAnswering Status = "answering"
	StatusRevealed  Status = "revealed"
)

type Verdict string

const (
	VerdictSuccess Verdict = "success"
	VerdictFail    Verdict = "fail"
)

// ParseVerdict accepts only the two wire values.
func ParseVerdict(raw string) (Verdict, bool) {
	switch Verdict(raw) {
	case VerdictSuccess, VerdictFail:
		return Verdict(raw), true
	}
	return "", false
}

// Participation is a player's standing in the current round.
type Participation string

const (
	// Excluded players joined after the round started and sit it out.
	Excluded  Participation = "excluded"
	Pending   Participation = "pending"
	Submitted Participation = "submitted"
)

type Player struct {
	ID            string
	Name          string
	IsLeader      bool
	Participation Participation
	LastSeenAt    time.Time
	JoinFromRound int
}

func (p *Player) eligibleFor(index int) bool {
	return p.JoinFromRound <= index
}

// done reports whether the player no longer holds up the round.
func (p *Player) done() bool {
	return p.Participation != Pending
}

type Round struct {
	Index     int
	Question  string
	Status    Status
	StartedAt time.Time
	Result    Verdict
	Answers   map[string]string
}

type JoinOptions struct {
	Name       string
	Passcode   string
	WantLeader bool
}

// Room is one game session. All fields are guarded by mu and only touched
// through Registry methods.
type Room struct {
	mu sync.Mutex

	ID            string
	Passcode      string
	AnswerSeconds int
	Players       []*Player
	Round         *Round
	SuccessCount  int
	FailCount     int
	UsedQuestions []string

	lastActive time.Time
	deleted    bool
}

func (r *Room) currentIndex() int {
	if r.Round == nil {
		return 0
	}
	return r.Round.Index
}

func (r *Room) findPlayer(playerID string) *Player {
	for _, player := range r.Players {
		if player.ID == playerID {
			return player
		}
	}
	return nil
}

func (r *Room) removePlayer(playerID string) bool {
	for i, player := range r.Players {
		if player.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) abandoned() bool {
	return len(r.Players) == 0 && r.Round == nil
}
