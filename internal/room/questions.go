package room

import (
	"context"
	"math/rand"
	"strings"
	"sync"
)

// QuestionSource supplies prompts that a room has not used yet. used must
// not be retained past the call.
type QuestionSource interface {
	CountUnused(ctx context.Context, used []string) (int64, error)
	PickUnused(ctx context.Context, used []string) (string, bool, error)
}

// MemoryQuestions is a fixed prompt list, used when no database is configured.
type MemoryQuestions struct {
	mu    sync.RWMutex
	texts []string
}

func NewMemoryQuestions(texts ...string) *MemoryQuestions {
	q := &MemoryQuestions{}
	q.Add(texts...)
	return q
}

// Add appends prompts, skipping blanks and duplicates.
func (q *MemoryQuestions) Add(texts ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	seen := make(map[string]struct{}, len(q.texts))
	for _, text := range q.texts {
		seen[text] = struct{}{}
	}
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		q.texts = append(q.texts, text)
	}
}

func (q *MemoryQuestions) CountUnused(_ context.Context, used []string) (int64, error) {
	return int64(len(q.unused(used))), nil
}

func (q *MemoryQuestions) PickUnused(_ context.Context, used []string) (string, bool, error) {
	pool := q.unused(used)
	if len(pool) == 0 {
		return "", false, nil
	}
	return pool[rand.Intn(len(pool))], true, nil
}

func (q *MemoryQuestions) unused(used []string) []string {
	excluded := make(map[string]struct{}, len(used))
	for _, text := range used {
		excluded[text] = struct{}{}
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	pool := make([]string, 0, len(q.texts))
	for _, text := range q.texts {
		if _, ok := excluded[text]; ok {
			continue
		}
		pool = append(pool, text)
	}
	return pool
}

// DefaultQuestions is the starter prompt set.
func DefaultQuestions() []string {
	return []string{
		"The song that best represents Japan?",
		"Everyone's idea of the strongest weapon?",
		"Your ideal way to spend a day off?",
		"The thing you always end up buying at a convenience store?",
		"A moment that feels like youth?",
		"The most delicious food in the world?",
		"A place you want to visit once in your life?",
		"The first thing you do after waking up?",
		"The one item you would bring to a desert island?",
		"The character you think is the strongest?",
	}
}
