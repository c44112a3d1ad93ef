package main

import (
	"log"
	"os"
	"strings"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/migrations"
	"yatube/internal/router"
	"yatube/internal/storage"

	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	cfg := config.Load()
	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	driver, dsn := cfg.Driver()
	conn, err := db.Open(driver, dsn, cfg.DebugMode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migrations.Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to set up media storage: %v", err)
	}
	if disk, ok := store.(*storage.DiskStorage); ok {
		if err := os.MkdirAll(disk.BasePath, 0755); err != nil {
			log.Fatalf("Failed to create media directory: %v", err)
		}
	}

	r, err := router.New(cfg, conn, store)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	if cfg.TLSDomains != "" {
		log.Printf("Yatube server starting with TLS for %s", cfg.TLSDomains)
		err = autotls.Run(r, strings.Split(cfg.TLSDomains, ",")...)
	} else {
		log.Printf("Yatube server starting on %s", cfg.BindAddress)
		err = r.Run(cfg.BindAddress)
	}
	log.Fatalf("Server stopped: %v", err)
}
