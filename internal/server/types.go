package server

type createRoomRequest struct {
	AnswerSeconds *int   `json:"answerSeconds"`
	Passcode      string `json:"passcode" binding:"max=64"`
}

type joinRequest struct {
	Name     string `json:"name" binding:"omitempty,name"`
	Passcode string `json:"passcode" binding:"max=64"`
	IsLeader bool   `json:"isLeader"`
}

type leaveRequest struct {
	PlayerID string `json:"playerId"`
}

type stateQuery struct {
	PlayerID string `form:"playerId"`
}

type nextRoundRequest struct {
	CustomQuestion string `json:"customQuestion" binding:"omitempty,prompt"`
}

type submitRequest struct {
	PlayerID string `json:"playerId"`
	Answer   string `json:"answer" binding:"answer"`
}

type judgeRequest struct {
	Result string `json:"result"`
}

type createRoomResponse struct {
	ID string `json:"id"`
}

type joinResponse struct {
	PlayerID string `json:"playerId"`
	IsLeader bool   `json:"isLeader"`
}
