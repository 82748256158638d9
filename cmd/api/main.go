package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oggyb/qr-message-service/internal/cache/redis"
	"github.com/oggyb/qr-message-service/internal/config"
	"github.com/oggyb/qr-message-service/internal/db/gormdb"
	"github.com/oggyb/qr-message-service/internal/handler"
	"github.com/oggyb/qr-message-service/internal/qr"
	mesgRepo "github.com/oggyb/qr-message-service/internal/repository/gorm/message"
	routes "github.com/oggyb/qr-message-service/internal/router"
	"github.com/oggyb/qr-message-service/internal/server"
	"github.com/oggyb/qr-message-service/internal/service"
)

// @title       QR Message Service API
// @version     1.0
// @description Create short messages reachable through scannable QR codes.
// @BasePath    /
func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	// Init cache.
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(rootCtx); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	// Init DB.
	dsn := cfg.PostgresDSN()
	db, err := gormdb.New(dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}

	// Init QR encoder.
	encoder := qr.NewPNGEncoder(cfg.QR.Size)

	// Init repository and services.

	// Message
	msgRepository := mesgRepo.NewRepository(db)
	msgSvc := service.NewMessageService(
		msgRepository,
		encoder,
		cache,
		cfg.Message.ListLimit,
		cfg.DB.OpTimeout,
		cfg.Cache.ViewTTL,
	)

	// HTTP dependencies & server wiring.

	// Handlers
	homeHandler := handler.NewHomeHandler(db)
	messageHandler := handler.NewMessageHandler(msgSvc, cfg.Message.PreviewLength)

	// Init route dependencies
	deps := routes.AppDeps{
		Home:    homeHandler,
		Message: messageHandler,
	}

	// Init Server
	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps)

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the HTTP server in a separate goroutine so we can listen for signals.
	go func() {
		log.Printf("HTTP server listening on %s", addr)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Println("[Main] Shutdown signal received, starting graceful shutdown...")

	// Give in-flight requests some time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Gracefully shut down the HTTP server.
	log.Println("[Main] Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] HTTP server graceful shutdown failed: %v", err)
	} else {
		log.Println("[Main] HTTP server stopped.")
	}

	log.Println("[Main] Shutdown complete.")
}
