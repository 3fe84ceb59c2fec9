package main

import (
	"context"
	"flag"
	"log"
	"time"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	retention := flag.Duration("older-than", cfg.RoomRetention(), "delete rooms created before now minus this duration")
	flag.Parse()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	cutoff := time.Now().UTC().Add(-*retention)
	deleted, err := db.NewLedger(conn).DeleteRoomsBefore(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}
	log.Printf("old rooms deleted count=%d cutoff=%s", deleted, cutoff.Format(time.RFC3339))
}
