// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-session/internal/config"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/checkout"
	"github.com/your-org/storefront-session/internal/domain/order"
	"github.com/your-org/storefront-session/internal/domain/session"
	"github.com/your-org/storefront-session/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-session/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-session/internal/infrastructure/persistence"
	"github.com/your-org/storefront-session/internal/interfaces/http"
	"github.com/your-org/storefront-session/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg)
	logg.WithFields(map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting storefront session service")

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logg.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logg.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(); err != nil {
		logg.Fatalf("Database health check failed: %v", err)
	}

	if err := redisClient.Health(); err != nil {
		logg.Fatalf("Redis health check failed: %v", err)
	}

	migration := postgres.NewMigration(db.GetDB())

	if err := migration.RunAutoMigrations(); err != nil {
		logg.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		logg.Warnf("Index creation failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logg.Warnf("Data seeding failed: %v", err)
		}
	}

	newRepo := sessionRepositoryFactory(cfg, redisClient)

	sessions := session.NewManager(newRepo, cfg.Session.StoreIdleTTL, logg)
	placer := order.NewService(db.GetDB(), logg)
	checkouts := checkout.NewRegistry(placer, cfg.Session.CheckoutTTL)
	catalogSvc := catalog.NewService(db.GetDB(), redisClient.GetClient(), cfg, logg)

	server := http.NewServer(cfg, logg, db.GetDB(), redisClient.GetClient(), sessions, checkouts, catalogSvc)

	go func() {
		if err := server.Start(); err != nil {
			logg.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logg.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logg.Info("Server shutdown completed")
}

// sessionRepositoryFactory selects the snapshot backend from configuration
func sessionRepositoryFactory(cfg *config.Config, redisClient *redis.Client) session.RepositoryFactory {
	switch cfg.Session.Backend {
	case "file":
		return func(sessionID string) session.StateRepository {
			return persistence.NewFileRepository(cfg.Session.FileDir, sessionID)
		}
	default:
		return func(sessionID string) session.StateRepository {
			return persistence.NewRedisRepository(
				redisClient.GetClient(),
				cfg.Session.Namespace,
				sessionID,
				cfg.Session.SnapshotTTL,
			)
		}
	}
}
