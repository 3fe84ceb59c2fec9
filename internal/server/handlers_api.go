package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sketch-party/internal/room"
)

func (s *Server) handleCreateRoom(c *gin.Context) {
	var req createRoomRequest
	if !bindJSON(c, &req, bindMessages{
		"Passcode": {"max": "passcode is too long"},
	}, "invalid room settings") {
		return
	}
	answerSeconds := s.cfg.DefaultAnswerSeconds
	if req.AnswerSeconds != nil {
		answerSeconds = *req.AnswerSeconds
	}
	if answerSeconds <= 0 || answerSeconds > s.cfg.MaxAnswerSeconds {
		writeError(c, http.StatusBadRequest, "answerSeconds out of range")
		return
	}

	view := s.rooms.Create(answerSeconds, req.Passcode)
	log.Printf("room created room_id=%s answer_seconds=%d passcode=%t", view.ID, view.AnswerSeconds, view.HasPasscode)
	s.persistRoom(c, view)
	c.JSON(http.StatusCreated, createRoomResponse{ID: view.ID})
}

func (s *Server) handleJoinRoom(c *gin.Context) {
	var req joinRequest
	if !bindJSON(c, &req, bindMessages{
		"Name":     {"name": "name must be 20 characters or fewer"},
		"Passcode": {"max": "invalid passcode"},
	}, "invalid join request") {
		return
	}
	name, _ := validateName(req.Name)

	view, player, err := s.rooms.Join(c.Param("roomID"), room.JoinOptions{
		Name:       name,
		Passcode:   req.Passcode,
		WantLeader: req.IsLeader,
	})
	if err != nil {
		writeRoomError(c, "join", err)
		return
	}
	log.Printf("player joined room_id=%s player_id=%s leader=%t join_from_round=%d", view.ID, player.ID, player.IsLeader, player.JoinFromRound)
	s.persistEvent(c, view, player.ID, eventPlayerJoined, EventPayload{PlayerName: player.Name, IsLeader: player.IsLeader})
	c.JSON(http.StatusOK, joinResponse{PlayerID: player.ID, IsLeader: player.IsLeader})
}

func (s *Server) handleLeaveRoom(c *gin.Context) {
	var req leaveRequest
	if !bindJSON(c, &req, nil, "") {
		return
	}
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		writeError(c, http.StatusBadRequest, "no playerId")
		return
	}
	roomID := c.Param("roomID")
	if s.rooms.Leave(roomID, playerID) {
		log.Printf("player left room_id=%s player_id=%s", roomID, playerID)
		s.persistEvent(c, room.View{ID: roomID}, playerID, eventPlayerLeft, EventPayload{})
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleState(c *gin.Context) {
	var query stateQuery
	if !bindQuery(c, &query) {
		return
	}
	view, outcome, err := s.rooms.State(c.Param("roomID"), strings.TrimSpace(query.PlayerID))
	if err != nil {
		writeRoomError(c, "state", err)
		return
	}
	for _, evicted := range outcome.Evicted {
		log.Printf("player evicted room_id=%s player_id=%s", view.ID, evicted)
		s.persistEvent(c, view, evicted, eventPlayerEvicted, EventPayload{})
	}
	if outcome.Revealed {
		log.Printf("round revealed room_id=%s round=%d answers=%d", view.ID, view.Round.Index, len(view.Round.Answers))
		s.persistEvent(c, view, "", eventRoundRevealed, EventPayload{Answers: len(view.Round.Answers)})
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleNextRound(c *gin.Context) {
	var req nextRoundRequest
	if !bindJSON(c, &req, bindMessages{
		"CustomQuestion": {"prompt": "customQuestion must be 140 characters or fewer"},
	}, "invalid round request") {
		return
	}
	custom := strings.TrimSpace(req.CustomQuestion)
	view, err := s.rooms.StartNextRound(c.Request.Context(), c.Param("roomID"), custom)
	if err != nil {
		writeRoomError(c, "next round", err)
		return
	}
	log.Printf("round started room_id=%s round=%d custom=%t", view.ID, view.Round.Index, custom != "")
	s.persistEvent(c, view, "", eventRoundStarted, EventPayload{Question: view.Round.Question, Custom: custom != ""})
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if !bindJSON(c, &req, bindMessages{
		"Answer": {"answer": "answer is too large"},
	}, "invalid answer") {
		return
	}
	view, err := s.rooms.SubmitAnswer(c.Param("roomID"), strings.TrimSpace(req.PlayerID), req.Answer)
	if err != nil {
		writeRoomError(c, "submit", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleJudge(c *gin.Context) {
	var req judgeRequest
	if !bindJSON(c, &req, nil, "invalid result") {
		return
	}
	verdict, ok := room.ParseVerdict(req.Result)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid result")
		return
	}
	view, err := s.rooms.JudgeRound(c.Param("roomID"), verdict)
	if err != nil {
		writeRoomError(c, "judge", err)
		return
	}
	log.Printf("round judged room_id=%s round=%d result=%s success=%d fail=%d", view.ID, view.Round.Index, verdict, view.SuccessCount, view.FailCount)
	s.persistEvent(c, view, "", eventRoundJudged, EventPayload{
		Result:       string(verdict),
		SuccessCount: view.SuccessCount,
		FailCount:    view.FailCount,
	})
	c.JSON(http.StatusOK, view)
}
