package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"edadash/app"
	"edadash/internal/api"
	"edadash/internal/config"
	"edadash/internal/logging"
	"edadash/internal/uploads"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logging.ParseLevel(cfg.Server.LogLevel); err == nil {
		logging.SetDefaultLevel(level)
	}

	store := uploads.NewStore(cfg.Data.UploadTTL)
	done := make(chan struct{})
	defer close(done)
	go store.Run(done, time.Minute)

	a := api.NewApp(cfg, app.NewDashboard(app.SchemaFromConfig(cfg.Columns)).RestrictPaths(cfg.Data.Root), store)
	log.Fatal(a.Start(":" + cfg.API.Port))
}
