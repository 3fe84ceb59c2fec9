package db

import (
	"context"
	"errors"
	"math/rand"

	"gorm.io/gorm"
)

// QuestionStore serves prompts from the questions table.
type QuestionStore struct {
	conn *gorm.DB
}

func NewQuestionStore(conn *gorm.DB) *QuestionStore {
	return &QuestionStore{conn: conn}
}

func (s *QuestionStore) unused(ctx context.Context, used []string) *gorm.DB {
	query := s.conn.WithContext(ctx).Model(&Question{})
	if len(used) > 0 {
		query = query.Where("text NOT IN ?", used)
	}
	return query
}

func (s *QuestionStore) CountUnused(ctx context.Context, used []string) (int64, error) {
	var count int64
	if err := s.unused(ctx, used).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PickUnused picks uniformly among unused prompts by counting, then reading
// one row at a random offset.
func (s *QuestionStore) PickUnused(ctx context.Context, used []string) (string, bool, error) {
	count, err := s.CountUnused(ctx, used)
	if err != nil {
		return "", false, err
	}
	if count == 0 {
		return "", false, nil
	}
	var question Question
	err = s.unused(ctx, used).
		Order("id").
		Offset(rand.Intn(int(count))).
		Limit(1).
		Take(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return question.Text, true, nil
}
