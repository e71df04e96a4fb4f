package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/cochonnet/internal/config"
	"github.com/AdamBeresnev/cochonnet/internal/db"
	"github.com/AdamBeresnev/cochonnet/internal/service"
	"github.com/AdamBeresnev/cochonnet/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	slog.SetDefault(config.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr))

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a nil source draws phase 1 from the global generator
	svc := service.NewTournamentService(store.NewBackupStore(database, cfg.MaxBackups), nil)

	restored, err := svc.RestoreLatest(ctx)
	if err != nil {
		slog.Warn("could not restore the most recent backup", "error", err)
	} else if restored {
		log.Println("Restored the most recent backup")
	}

	saver := service.NewAutoSaver(svc, cfg.AutoSaveInterval, cfg.AutoSaveMinGap)
	go saver.Run(ctx)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	log.Println("Server starting on http://localhost" + cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	if _, err := saver.SaveNow(context.Background()); err != nil {
		slog.Error("final backup failed", "error", err)
	}
}
