package main

import (
	"context"
	"flag"

	"fursa_backend/database"
	"fursa_backend/internal/config"
	"fursa_backend/internal/logger"
)

func main() {
	drop := flag.Bool("drop", false, "drop all tables before migrating (dev only)")
	flag.Parse()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(context.Background(), database.Options{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		Debug:        true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if *drop {
		if !cfg.IsDevelopment() {
			logger.Fatal("Refusing to drop tables outside development", "env", cfg.Server.Env)
		}
		if err := database.DropAll(db); err != nil {
			logger.Fatal("Failed to drop tables", "error", err)
		}
		logger.Warn("All tables dropped")
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migration finished")
}
