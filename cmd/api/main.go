package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-notify-api/internal/config"
	"github.com/go-notify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-notify-api/internal/infrastructure/jwt"
	"github.com/go-notify-api/internal/infrastructure/memstore"
	s3infra "github.com/go-notify-api/internal/infrastructure/s3"
	"github.com/go-notify-api/internal/infrastructure/sns"
	transporthttp "github.com/go-notify-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	deps := &transporthttp.Deps{}

	// Event log + entity lookup. The memory backend skips AWS entirely and
	// leaves reminder/freshness checks without entity state (fail open).
	if cfg.StoreBackend == "memory" {
		deps.LogStore = memstore.New()
	} else {
		dynamoClient := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)
		deps.LogStore = dynamo.NewLogStore(dynamoClient, cfg.DynamoTables.NotificationLog)
		deps.Entities = dynamo.NewEntityStore(dynamoClient, cfg.DynamoTables)
	}

	// JWT provider (optional — graceful fallback if keys are missing).
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		deps.JWT = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Retention archive (optional).
	if cfg.ArchiveBucket != "" {
		deps.Archiver = s3infra.NewArchiver(s3infra.NewClient(cfg), cfg.ArchiveBucket)
	}

	// SNS event mirror (optional — graceful fallback).
	if m, err := sns.NewMirror(cfg); err == nil {
		deps.Mirror = m
	} else {
		log.Printf("WARN: SNS mirror not available: %v", err)
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, store=%s)", cfg.AppPort, cfg.AppEnv, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
