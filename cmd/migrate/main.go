package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/ekicare/ekicare-api/internal/config"
	"github.com/ekicare/ekicare-api/migrations"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

const migrateTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	all, err := migrations.Load()
	if err != nil {
		log.Fatal("Failed to load migrations: %v", err)
	}

	applied, err := migrations.Apply(ctx, db, all, log)
	if err != nil {
		log.Fatal("Migration failed after %d applied: %v", len(applied), err)
	}

	log.Info("Database %s up to date: %d of %d migrations applied now", cfg.Database.Target(), len(applied), len(all))
}
