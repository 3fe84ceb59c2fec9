package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/room"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Recorder receives room lifecycle records. A nil *db.Ledger is a valid
// no-op Recorder.
type Recorder interface {
	RecordRoom(ctx context.Context, roomID string, answerSeconds int, hasPasscode bool) error
	RecordEvent(ctx context.Context, event db.RoomEvent, payload any) error
}

type Server struct {
	rooms  *room.Registry
	ledger Recorder
	cfg    config.Config
}

func New(rooms *room.Registry, ledger Recorder, cfg config.Config) *Server {
	registerValidators()
	return &Server{
		rooms:  rooms,
		ledger: ledger,
		cfg:    cfg,
	}
}

func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.POST("/api/rooms", s.handleCreateRoom)
	rooms := r.Group("/api/rooms/:roomID")
	{
		rooms.POST("/join", s.handleJoinRoom)
		rooms.POST("/leave", s.handleLeaveRoom)
		rooms.GET("/state", s.handleState)
		rooms.POST("/next", s.handleNextRound)
		rooms.POST("/submit", s.handleSubmit)
		rooms.POST("/judge", s.handleJudge)
	}
	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
