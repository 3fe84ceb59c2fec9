package room

import "time"

// View is a copy of a room taken under its lock, safe to serialize.
type View struct {
	ID            string       `json:"id"`
	HasPasscode   bool         `json:"hasPasscode"`
	AnswerSeconds int          `json:"answerSeconds"`
	Players       []PlayerView `json:"players"`
	Round         *RoundView   `json:"round"`
	SuccessCount  int          `json:"successCount"`
	FailCount     int          `json:"failCount"`
	UsedQuestions []string     `json:"usedQuestions"`
}

type PlayerView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	IsLeader      bool          `json:"isLeader"`
	Submitted     bool          `json:"submitted"`
	Participation Participation `json:"participation"`
	LastSeenAt    int64         `json:"lastSeenAt"`
	JoinFromRound int           `json:"joinFromRound"`
}

type RoundView struct {
	Index     int               `json:"index"`
	Question  string            `json:"question"`
	Status    Status            `json:"status"`
	StartedAt int64             `json:"startedAt"`
	Result    Verdict           `json:"result,omitempty"`
	Answers   map[string]string `json:"answers"`
}

func snapshot(room *Room) View {
	view := View{
		ID:            room.ID,
		HasPasscode:   room.Passcode != "",
		AnswerSeconds: room.AnswerSeconds,
		Players:       make([]PlayerView, 0, len(room.Players)),
		SuccessCount:  room.SuccessCount,
		FailCount:     room.FailCount,
		UsedQuestions: append([]string{}, room.UsedQuestions...),
	}
	for _, player := range room.Players {
		view.Players = append(view.Players, playerView(player))
	}
	if round := room.Round; round != nil {
		answers := make(map[string]string, len(round.Answers))
		for id, answer := range round.Answers {
			answers[id] = answer
		}
		view.Round = &RoundView{
			Index:     round.Index,
			Question:  round.Question,
			Status:    round.Status,
			StartedAt: unixMillis(round.StartedAt),
			Result:    round.Result,
			Answers:   answers,
		}
	}
	return view
}

func playerView(player *Player) PlayerView {
	return PlayerView{
		ID:            player.ID,
		Name:          player.Name,
		IsLeader:      player.IsLeader,
		Submitted:     player.done(),
		Participation: player.Participation,
		LastSeenAt:    unixMillis(player.LastSeenAt),
		JoinFromRound: player.JoinFromRound,
	}
}

func unixMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// Player returns the named player from the view.
func (v View) Player(playerID string) (PlayerView, bool) {
	for _, player := range v.Players {
		if player.ID == playerID {
			return player, true
		}
	}
	return PlayerView{}, false
}
