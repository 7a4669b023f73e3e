package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"vet-management/internal/adapters/storage/jsonfile"
	"vet-management/internal/adapters/storage/postgres"
	"vet-management/internal/config"
	"vet-management/internal/platform/logger"
	"vet-management/internal/ports/storage"
	"vet-management/internal/router"
)

func main() {
	_ = godotenv.Load() // .env opcional para dev

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var store storage.Store
	if cfg.DatabaseDSN != "" {
		db, err := postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		store = postgres.NewStore(db)
		appLog.Info("using postgres store", nil)
	} else {
		fs, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			log.Fatalf("jsonfile: %v", err)
		}
		store = fs
		appLog.Info("using json file store", map[string]any{"dir": cfg.DataDir})
	}

	r := router.NewRouter(router.Options{Store: store, Logger: appLog})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": cfg.Addr()})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
