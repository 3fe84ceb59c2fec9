package server

const (
	eventRoomCreated   = "room_created"
	eventPlayerJoined  = "player_joined"
	eventPlayerLeft    = "player_left"
	eventPlayerEvicted = "player_evicted"
	eventRoundStarted  = "round_started"
	eventRoundRevealed = "round_revealed"
	eventRoundJudged   = "round_judged"
)

type EventPayload struct {
	PlayerName    string `json:"player,omitempty"`
	IsLeader      bool   `json:"is_leader,omitempty"`
	Question      string `json:"question,omitempty"`
	Custom        bool   `json:"custom,omitempty"`
	Result        string `json:"result,omitempty"`
	Answers       int    `json:"answers,omitempty"`
	AnswerSeconds int    `json:"answer_seconds,omitempty"`
	SuccessCount  int    `json:"success_count,omitempty"`
	FailCount     int    `json:"fail_count,omitempty"`
}
