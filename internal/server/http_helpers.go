package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sketch-party/internal/room"
)

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
	})
}

// writeRoomError maps core errors onto HTTP statuses.
func writeRoomError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		writeError(c, http.StatusNotFound, "not found")
	case errors.Is(err, room.ErrRoundNotFound):
		writeError(c, http.StatusNotFound, "room/round not found")
	case errors.Is(err, room.ErrPlayerNotFound):
		writeError(c, http.StatusNotFound, "player not found")
	case errors.Is(err, room.ErrInvalidPasscode):
		writeError(c, http.StatusForbidden, "invalid passcode")
	case errors.Is(err, room.ErrNoMoreQuestions):
		writeError(c, http.StatusConflict, "no_more_questions")
	case errors.Is(err, room.ErrRoomFull):
		writeError(c, http.StatusConflict, "room full")
	default:
		log.Printf("%s failed room_id=%s request_id=%s error=%v", action, c.Param("roomID"), c.GetString(requestIDKey), err)
		writeError(c, http.StatusInternalServerError, "error")
	}
}
