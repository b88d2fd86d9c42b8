package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracewing-backend/config"
	"tracewing-backend/internal/ingest"
	"tracewing-backend/internal/mailer"
	"tracewing-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := config.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	db, err := config.ConnectDB(cfg.DBDriver, cfg.DBDSN, config.GormLogLevel(cfg.LogLevel))
	if err != nil {
		log.Error("database connection failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	log.Info("database connected", "driver", cfg.DBDriver)

	deps := routes.Deps{DB: db, Config: cfg, Log: log}
	if cfg.MailEnabled() {
		deps.Notifier = mailer.NewCheckOutMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		}, log)
		log.Info("check-out mail enabled", "smtp_host", cfg.SMTPHost)
	}
	service := routes.NewAttendanceService(deps)

	var subscriber *ingest.Subscriber
	if cfg.MQTTBrokerURL != "" {
		subscriber = ingest.NewSubscriber(ingest.SubscriberConfig{
			BrokerURL: cfg.MQTTBrokerURL,
			ClientID:  cfg.MQTTClientID,
			Topic:     cfg.MQTTTopic,
		}, service, log)
		if err := subscriber.Start(); err != nil {
			log.Error("mqtt ingestion disabled", "error", err)
			subscriber = nil
		}
	}

	app := fiber.New(fiber.Config{AppName: "tracewing-backend"})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	routes.Setup(app, deps, service)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if subscriber != nil {
			subscriber.Stop()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown", "error", err)
		}
	}()

	log.Info("server listening", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
