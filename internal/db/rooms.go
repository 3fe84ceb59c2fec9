package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger keeps an append-only trail of rooms and their lifecycle events.
type Ledger struct {
	conn *gorm.DB
}

func NewLedger(conn *gorm.DB) *Ledger {
	return &Ledger{conn: conn}
}

func (l *Ledger) RecordRoom(ctx context.Context, roomID string, answerSeconds int, hasPasscode bool) error {
	if l == nil || l.conn == nil {
		return nil
	}
	record := RoomRecord{
		RoomID:        roomID,
		AnswerSeconds: answerSeconds,
		HasPasscode:   hasPasscode,
	}
	return l.conn.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

func (l *Ledger) RecordEvent(ctx context.Context, event RoomEvent, payload any) error {
	if l == nil || l.conn == nil {
		return nil
	}
	if event.RoomID == "" {
		return errors.New("room id is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event.Payload = datatypes.JSON(data)
	return l.conn.WithContext(ctx).Create(&event).Error
}

// DeleteRoomsBefore removes ledger rooms created before cutoff along with
// their events.
func (l *Ledger) DeleteRoomsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if l == nil || l.conn == nil {
		return 0, nil
	}
	var deleted int64
	err := l.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&RoomRecord{}).Select("room_id").Where("created_at < ?", cutoff)
		if err := tx.Where("room_id IN (?)", stale).Delete(&RoomEvent{}).Error; err != nil {
			return err
		}
		result := tx.Where("created_at < ?", cutoff).Delete(&RoomRecord{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
