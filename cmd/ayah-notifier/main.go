package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ayah-app/notification-service/broadcast"
	"github.com/ayah-app/notification-service/config"
	"github.com/ayah-app/notification-service/db"
	"github.com/ayah-app/notification-service/handler"
	"github.com/ayah-app/notification-service/logging"
	"github.com/ayah-app/notification-service/push"
	"github.com/ayah-app/notification-service/registry"
)

var (
	name    = "ayah-notifier"
	version = "0.1.0"
)

func main() {
	// Initialize logger
	logger, cleanup := logging.InitializeLogger(name)
	defer cleanup()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the database
	database, err := db.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}
	defer database.Close()

	// Wire the components
	subscriptionRegistry := registry.NewPostgresRegistry(logger, database)
	sender := push.NewWebPushSender(logger, cfg.VAPID)
	job := broadcast.NewJob(logger, subscriptionRegistry, sender, cfg.VAPID)

	pushHandler := handler.NewPushHandler(logger, subscriptionRegistry, cfg.VAPID.PublicKey)
	notificationHandler := handler.NewNotificationHandler(logger, job)

	router := handler.NewRouter(pushHandler, notificationHandler)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting %s v%s on port %s", name, version, cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Server shutdown failed", "error", err)
	}
}
