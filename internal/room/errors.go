package room

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoundNotFound   = errors.New("room or round not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrNoMoreQuestions = errors.New("no_more_questions")
	ErrRoomFull        = errors.New("room is full")
)
