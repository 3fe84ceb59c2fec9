package db

import (
	"time"

	"gorm.io/datatypes"
)

type Question struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"size:280;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RoomRecord is the ledger row written when a room is created. Live room
// state never lives here.
type RoomRecord struct {
	ID            uint      `gorm:"primaryKey"`
	RoomID        string    `gorm:"size:16;not null;uniqueIndex"`
	AnswerSeconds int       `gorm:"not null"`
	HasPasscode   bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

type RoomEvent struct {
	ID         uint           `gorm:"primaryKey"`
	RoomID     string         `gorm:"size:16;index;not null"`
	PlayerID   string         `gorm:"size:16"`
	RoundIndex int            `gorm:"not null;default:0"`
	Type       string         `gorm:"size:64;not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"not null"`
}
