package main

import (
	"context"
	"os"

	itemmigrations "github.com/ghuser/menagerist/migrations/item"
	"github.com/ghuser/menagerist/pkg/config"
	"github.com/ghuser/menagerist/pkg/logger"
	"github.com/ghuser/menagerist/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg)

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required to run migrations")
		os.Exit(1)
	}

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, itemmigrations.FS, log); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations complete")
}
