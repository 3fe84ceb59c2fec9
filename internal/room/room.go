package room

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
)

const DefaultPlayerName = "ななし"

// Join adds a player. Mid-game joiners wait for the next round; leadership
// goes only to a first joiner who asks for it.
func (r *Registry) Join(roomID string, opts JoinOptions) (View, PlayerView, error) {
	var joined PlayerView
	view, err := r.withRoom(roomID, ErrRoomNotFound, func(room *Room) error {
		if room.Passcode != "" && subtle.ConstantTimeCompare([]byte(room.Passcode), []byte(opts.Passcode)) != 1 {
			return ErrInvalidPasscode
		}
		if r.maxPlayers > 0 && len(room.Players) >= r.maxPlayers {
			return ErrRoomFull
		}

		current := room.currentIndex()
		joinFrom := 1
		if current != 0 {
			joinFrom = current + 1
		}
		participation := Pending
		if room.Round != nil {
			participation = Excluded
		}
		name := strings.TrimSpace(opts.Name)
		if name == "" {
			name = DefaultPlayerName
		}

		id := randomID(playerIDLength)
		for room.findPlayer(id) != nil {
			id = randomID(playerIDLength)
		}
		player := &Player{
			ID:            id,
			Name:          name,
			IsLeader:      len(room.Players) == 0 && opts.WantLeader,
			Participation: participation,
			LastSeenAt:    r.now(),
			JoinFromRound: joinFrom,
		}
		room.Players = append(room.Players, player)
		joined = playerView(player)
		return nil
	})
	if err != nil {
		return View{}, PlayerView{}, err
	}
	return view, joined, nil
}

// Leave removes a player and reports whether it was present. It never fails;
// a room left with no players and no round is deleted.
func (r *Registry) Leave(roomID, playerID string) bool {
	room, ok := r.lookup(roomID)
	if !ok {
		return false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.deleted {
		return false
	}
	removed := room.removePlayer(playerID)
	room.lastActive = r.now()
	if room.abandoned() {
		r.retire(room)
	}
	return removed
}

func (r *Registry) StartNextRound(ctx context.Context, roomID, customQuestion string) (View, error) {
	return r.withRoom(roomID, ErrRoomNotFound, func(room *Room) error {
		next := room.currentIndex() + 1

		question := strings.TrimSpace(customQuestion)
		if question == "" {
			picked, err := r.pickQuestion(ctx, room.UsedQuestions)
			if err != nil {
				return err
			}
			question = picked
		}

		room.Round = &Round{
			Index:     next,
			Question:  question,
			Status:    StatusAnswering,
			StartedAt: r.now(),
			Answers:   make(map[string]string),
		}
		for _, player := range room.Players {
			if player.eligibleFor(next) {
				player.Participation = Pending
			} else {
				player.Participation = Excluded
			}
		}
		room.UsedQuestions = append(room.UsedQuestions, question)
		return nil
	})
}

func (r *Registry) pickQuestion(ctx context.Context, used []string) (string, error) {
	if r.questions == nil {
		return "", ErrNoMoreQuestions
	}
	available, err := r.questions.CountUnused(ctx, used)
	if err != nil {
		return "", fmt.Errorf("count questions: %w", err)
	}
	if available == 0 {
		return "", ErrNoMoreQuestions
	}
	question, ok, err := r.questions.PickUnused(ctx, used)
	if err != nil {
		return "", fmt.Errorf("pick question: %w", err)
	}
	if !ok {
		return "", ErrNoMoreQuestions
	}
	return question, nil
}

// SubmitAnswer records a player's answer. Players not yet eligible for the
// current round are ignored without error.
func (r *Registry) SubmitAnswer(roomID, playerID, answer string) (View, error) {
	return r.withRoom(roomID, ErrRoundNotFound, func(room *Room) error {
		if room.Round == nil {
			return ErrRoundNotFound
		}
		player := room.findPlayer(playerID)
		if player == nil {
			return ErrPlayerNotFound
		}
		if !player.eligibleFor(room.Round.Index) {
			return nil
		}
		player.Participation = Submitted
		room.Round.Answers[playerID] = answer
		return nil
	})
}

// Outcome describes what a reveal check changed.
type Outcome struct {
	Revealed bool
	Evicted  []string
}

// RevealIfNeeded reaps stale players, then reveals the round once every
// eligible player has answered or the time limit has passed.
func (r *Registry) RevealIfNeeded(roomID string) (View, Outcome, error) {
	var outcome Outcome
	view, err := r.withRoom(roomID, ErrRoomNotFound, func(room *Room) error {
		outcome = r.revealCheck(room)
		return nil
	})
	return view, outcome, err
}

// State is the polling entry point: heartbeat for playerID (when set) and a
// reveal check in one step.
func (r *Registry) State(roomID, playerID string) (View, Outcome, error) {
	var outcome Outcome
	view, err := r.withRoom(roomID, ErrRoomNotFound, func(room *Room) error {
		if playerID != "" {
			if player := room.findPlayer(playerID); player != nil {
				player.LastSeenAt = r.now()
			}
		}
		outcome = r.revealCheck(room)
		return nil
	})
	return view, outcome, err
}

func (r *Registry) revealCheck(room *Room) Outcome {
	now := r.now()
	outcome := Outcome{Evicted: r.reap(room, now)}
	if len(outcome.Evicted) > 0 && room.abandoned() {
		r.retire(room)
	}

	round := room.Round
	if round == nil || round.Status == StatusRevealed {
		return outcome
	}

	eligible := 0
	waiting := 0
	for _, player := range room.Players {
		if !player.eligibleFor(round.Index) {
			continue
		}
		eligible++
		if !player.done() {
			waiting++
		}
	}
	allSubmitted := eligible > 0 && waiting == 0
	timedOut := now.Sub(round.StartedAt) >= time.Duration(room.AnswerSeconds)*time.Second
	if allSubmitted || timedOut {
		round.Status = StatusRevealed
		outcome.Revealed = true
	}
	return outcome
}

// JudgeRound applies the leader's verdict. A second call overwrites the
// verdict and counts again.
func (r *Registry) JudgeRound(roomID string, verdict Verdict) (View, error) {
	return r.withRoom(roomID, ErrRoundNotFound, func(room *Room) error {
		if room.Round == nil {
			return ErrRoundNotFound
		}
		room.Round.Result = verdict
		if verdict == VerdictSuccess {
			room.SuccessCount++
		} else {
			room.FailCount++
		}
		return nil
	})
}
