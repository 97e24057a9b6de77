package main

import (
	"os"

	"server/cmd/migration/initialize"
	"server/cmd/migration/seed"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
)

// Runs schema migrations, then production initialization, then development
// seed data outside of production.
func main() {
	log := logger.New("migration")

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to initialize database", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := initialize.InitializeTables(db.SQL, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if cfg.Environment != "production" {
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			log.Er("failed to seed database", err)
			os.Exit(1)
		}
	}

	log.Info("Migration complete")
}
