package main

import (
	"context"
	"log/slog"
	"os"

	"tracewing-backend/config"
	"tracewing-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	// separate binary, so load .env here as well
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := config.NewLogger(os.Stdout, cfg.LogLevel)

	db, err := config.ConnectDB(cfg.DBDriver, cfg.DBDSN, config.GormLogLevel(cfg.LogLevel))
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	log.Info("seeding database")
	opts := database.SeedOptions{
		AdminPassword:    config.GetEnv("SEED_ADMIN_PASSWORD", "admin123"),
		EmployeePassword: config.GetEnv("SEED_EMPLOYEE_PASSWORD", "employee123"),
	}
	if err := database.SeedAll(context.Background(), db, opts, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("seeding finished")
}
