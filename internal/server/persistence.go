package server

import (
	"log"

	"github.com/gin-gonic/gin"

	"sketch-party/internal/db"
	"sketch-party/internal/room"
)

// Ledger writes are best effort: the registry is the source of truth and a
// failed write never fails the request.

func (s *Server) persistRoom(c *gin.Context, view room.View) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.RecordRoom(c.Request.Context(), view.ID, view.AnswerSeconds, view.HasPasscode); err != nil {
		log.Printf("persist room failed room_id=%s request_id=%s error=%v", view.ID, c.GetString(requestIDKey), err)
		return
	}
	s.persistEvent(c, view, "", eventRoomCreated, EventPayload{AnswerSeconds: view.AnswerSeconds})
}

func (s *Server) persistEvent(c *gin.Context, view room.View, playerID, eventType string, payload EventPayload) {
	if s.ledger == nil {
		return
	}
	event := db.RoomEvent{
		RoomID:   view.ID,
		PlayerID: playerID,
		Type:     eventType,
	}
	if view.Round != nil {
		event.RoundIndex = view.Round.Index
	}
	if err := s.ledger.RecordEvent(c.Request.Context(), event, payload); err != nil {
		log.Printf("persist event failed room_id=%s type=%s request_id=%s error=%v", view.ID, eventType, c.GetString(requestIDKey), err)
	}
}
