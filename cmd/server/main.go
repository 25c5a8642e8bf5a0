package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradepulse/Social-Trading-Backend/internal/api"
	"github.com/tradepulse/Social-Trading-Backend/internal/config"
	"github.com/tradepulse/Social-Trading-Backend/internal/database"
	"github.com/tradepulse/Social-Trading-Backend/internal/repository"
	"github.com/tradepulse/Social-Trading-Backend/internal/scheduler"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Aggregator client, constructed once and injected everywhere
	client := snaptrade.NewAPIClient(cfg.Snaptrade.BaseURL, cfg.Snaptrade.ClientID, cfg.Snaptrade.ConsumerKey)

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	syncService := service.NewSyncService(
		client,
		userRepo,
		activityRepo,
		tradeRepo,
		cfg.Sync.PageSize,
		cfg.Sync.MaxPages,
	)
	accountService := service.NewAccountService(
		connectionRepo,
		accountRepo,
	)
	userService, err := service.NewUserService(client, userRepo, cfg.Sync.SecretKey)
	if err != nil {
		log.Fatalf("Failed to create user service: %v", err)
	}

	// Optional background auto-sync
	var autoSync *scheduler.Scheduler
	if cfg.Sync.AutoSyncSchedule != "" {
		autoSync = scheduler.New(userService, userRepo, accountRepo, syncService)
		if err := autoSync.Start(cfg.Sync.AutoSyncSchedule); err != nil {
			log.Fatalf("Failed to start auto-sync scheduler: %v", err)
		}
	}

	// Create router
	router := api.NewRouter(systemService, syncService, accountService, userService, client, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if autoSync != nil {
		autoSync.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
