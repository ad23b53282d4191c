package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bgp-notifier/internal/api"
	"bgp-notifier/internal/config"
	"bgp-notifier/internal/db"
	"bgp-notifier/internal/kafka"
	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
	"bgp-notifier/internal/notification"
	"bgp-notifier/internal/providers"
	"bgp-notifier/internal/templates"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Load per-channel email templates. Missing templates are logged
	// and the channel renders with an error later; startup continues.
	store := templates.NewStore(cfg.Notification.TemplateDir, models.Channels, logger)

	// Connect to DB (optional notification log)
	var dbConn *db.DB
	if cfg.DB.DSN != "" {
		dbConn, err = db.New(cfg.DB.DSN)
		if err != nil {
			logger.Errorf("DB connect failed: %v", err)
			log.Fatalf("DB connect failed: %v", err)
		}
		defer dbConn.Close()
	}

	// Mail transport; without SMTP config delivery is a no-op.
	var sender notification.Sender
	if cfg.MailEnabled() {
		sender = providers.NewEmailSender(cfg)
	} else {
		logger.Warnf("No SMTP host configured, email delivery disabled")
	}

	// Telegram side channel, enabled only when fully configured.
	var announcer notification.Announcer
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		announcer = providers.NewTelegramAnnouncer(cfg, logger)
	}

	// Initialize notification service
	var notifStore notification.NotificationStore
	if dbConn != nil {
		notifStore = dbConn
	}
	svc := notification.New(cfg, logger, store, sender, announcer, notifStore)
	svc.Start()

	ctx, cancel := context.WithCancel(context.Background())

	// Start Kafka consumer
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer([]string{cfg.Kafka.Broker}, cfg.Kafka.Topic, cfg.Kafka.GroupID, svc)
		go consumer.Start(ctx)
	} else {
		logger.Warnf("No Kafka broker configured, consumer disabled")
	}

	// Start API server
	h := api.NewHandler(dbConn, logger, svc)
	router := api.NewRouter(logger, cfg, h)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancel()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Errorf("Kafka close failed: %v", err)
		}
	}
	svc.Stop()
	logger.Infof("Service stopped")
}
