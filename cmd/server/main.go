package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sketch-party/internal/config"
	"sketch-party/internal/db"
	"sketch-party/internal/room"
	"sketch-party/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var questions room.QuestionSource = room.NewMemoryQuestions(room.DefaultQuestions()...)
	var ledger server.Recorder
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		questions = db.NewQuestionStore(conn)
		ledger = db.NewLedger(conn)
		log.Printf("using postgres question store")
	} else {
		log.Printf("DATABASE_URL not set; using built-in prompts")
	}

	rooms := room.NewRegistry(questions,
		room.WithPlayerTimeout(cfg.PlayerTimeout()),
		room.WithIdleTimeout(cfg.IdleRoomTimeout()),
		room.WithMaxPlayers(cfg.MaxPlayers),
	)
	srv := server.New(rooms, ledger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.RunSweeper(ctx, cfg.SweepInterval())

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("sketch-party server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}
