package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"paraphrase-be/internal/bootstrap"
	"paraphrase-be/internal/config"
	"paraphrase-be/internal/server"
	"paraphrase-be/internal/tracer"
	"paraphrase-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Otel)
	defer shutdownTracer(context.Background())

	// 3. Database, only when wizard state lives in postgres
	var gormDB *gorm.DB
	if cfg.State.Store == "postgres" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return fmt.Errorf("unable to connect to GORM DB: %w", err)
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		return fmt.Errorf("failed to bootstrap: %w", err)
	}
	defer container.Close()

	// 5. Start Background Services
	if err := container.Start(ctx); err != nil {
		return fmt.Errorf("failed to start background services: %w", err)
	}

	// 6. Initialize and run the server until a signal arrives
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	return nil
}
