package main

import (
	"log"

	"github.com/ashurbayy/lifechip/config"
	"github.com/ashurbayy/lifechip/internal/database"
	"github.com/ashurbayy/lifechip/internal/logging"
	"github.com/ashurbayy/lifechip/internal/store"
)

// Applies the schema for a relational deployment. The in-memory store needs
// no migration; this binary requires DB_* to be configured.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if !cfg.DatabaseConfigured() {
		log.Fatal("DB_HOST is not set; nothing to migrate")
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.New(cfg, logger)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := store.NewGormStore(db).AutoMigrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	logger.Info("migration complete")
}
