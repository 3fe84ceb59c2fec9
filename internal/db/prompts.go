package db

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadQuestions upserts prompts into the questions table and returns how
// many rows were new.
func LoadQuestions(ctx context.Context, conn *gorm.DB, texts []string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	inserted := 0
	for _, text := range texts {
		entry := Question{Text: text}
		result := conn.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		if result.Error != nil {
			return inserted, result.Error
		}
		inserted += int(result.RowsAffected)
	}
	return inserted, nil
}

// ReadQuestionsFile reads prompts from a CSV file. See ReadQuestions.
func ReadQuestionsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadQuestions(file)
}

// ReadQuestions parses a CSV whose first row is a header. The prompt is the
// second column when present (category,text), otherwise the first.
func ReadQuestions(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var texts []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		text := ""
		if len(row) >= 2 {
			text = strings.TrimSpace(row[1])
		} else {
			text = strings.TrimSpace(row[0])
		}
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
	}
	return texts, nil
}
