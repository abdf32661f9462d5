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

	"github.com/redis/go-redis/v9"

	"github.com/ignite/delivery-monitor/internal/api"
	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/cache"
	"github.com/ignite/delivery-monitor/internal/config"
	"github.com/ignite/delivery-monitor/internal/database"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/repository/postgres"
	"github.com/ignite/delivery-monitor/internal/service/delivery"
	"github.com/ignite/delivery-monitor/internal/service/denylist"
	"github.com/ignite/delivery-monitor/internal/service/directory"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Repositories
	addressRepo := postgres.NewAddressRepo(db)
	deliveryRepo := postgres.NewDeliveryRepo(db)
	directoryRepo := postgres.NewDirectoryRepo(db)
	adminRepo := postgres.NewAdminRepo(db)

	var denyListRepo denylist.Repository = postgres.NewDenyListRepo(db)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, deny-list cache disabled: %v", err)
		} else {
			denyListRepo = cache.NewDenyListCache(denyListRepo, rdb, cfg.Redis.CacheTTL())
			log.Println("Deny-list lookup cache enabled")
		}
	}

	// The policy engine needs the system app id so every admin can see the
	// platform's own sending app. Running without one is fine; nothing extra
	// becomes visible.
	var systemAppID int64
	if app, err := directoryRepo.SystemApp(ctx); err == nil {
		systemAppID = app.ID
	} else if errors.Is(err, directory.ErrNotFound) {
		log.Println("No system app configured")
	} else {
		log.Fatalf("load system app: %v", err)
	}
	engine := policy.NewEngine(systemAppID)

	// Services
	deliverySvc := delivery.NewService(engine, deliveryRepo, addressRepo)
	denyListSvc := denylist.NewService(engine, denyListRepo, addressRepo)
	directorySvc := directory.NewService(engine, directoryRepo)

	authn := auth.NewAuthenticator(adminRepo, cfg.Auth.SessionTTL())
	authn.CleanupExpiredSessions(ctx)

	handlers := api.NewHandlers(deliverySvc, denyListSvc, directorySvc, authn)
	server := api.NewServer(cfg.Server, handlers, cfg.RateLimit)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
