package main

import (
	"context"
	"flag"
	"log"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/room"
)

func main() {
	filePath := flag.String("file", "", "path to prompts csv; empty loads the built-in prompts")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open(config.Load())
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	texts := room.DefaultQuestions()
	if *filePath != "" {
		texts, err = db.ReadQuestionsFile(*filePath)
		if err != nil {
			log.Fatalf("failed to read prompts: %v", err)
		}
	}

	inserted, err := db.LoadQuestions(context.Background(), conn, texts)
	if err != nil {
		log.Fatalf("failed to load prompts: %v", err)
	}
	log.Printf("loaded prompts inserted=%d total=%d", inserted, len(texts))
}
